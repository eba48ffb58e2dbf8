package errs

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("book not found")
)

// Kind is the closed set of failure categories the handler distinguishes.
type Kind uint8

const (
	KindInfrastructure Kind = iota
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "infrastructure"
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned by the store when one or more record fields
// violate their constraints.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether field has at least one error.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Classify maps err onto its Kind. A nil error has no kind and is reported
// as infrastructure; callers check for nil first.
func Classify(err error) Kind {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInfrastructure
	}
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
