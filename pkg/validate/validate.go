package validate

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinYear = 0
	MaxYear = 9999
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator returns an echo.Validator. Field names in reported
// errors follow the form tag, then the json tag, of the struct field.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("year", isYear) //nolint:errcheck
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// isYear accepts a string holding a whole number within [MinYear, MaxYear].
func isYear(fl validator.FieldLevel) bool {
	y, err := strconv.Atoi(fl.Field().String())
	if err != nil {
		return false
	}
	return y >= MinYear && y <= MaxYear
}
