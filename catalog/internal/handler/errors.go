package handler

import (
	"fmt"
	"net/http"

	"github.com/Astemirdum/catalog-service/catalog/internal/errs"
	"github.com/Astemirdum/catalog-service/catalog/internal/views"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// wrap funnels the failures of fn. Not-found renders the dedicated page;
// everything else becomes an *echo.HTTPError for ErrorHandler.
func (h *Handler) wrap(fn echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := fn(c)
		if err == nil {
			return nil
		}
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return err
		}
		switch errs.Classify(err) {
		case errs.KindNotFound:
			return h.notFound(c)
		case errs.KindValidation:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
		}
	}
}

func (h *Handler) notFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, views.PageNotFound, echo.Map{
		"title": titleNotFound,
	})
}

// ErrorHandler is the only place that presents failures to the client.
func (h *Handler) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
		if httpErr.Internal != nil {
			err = httpErr.Internal
		}
	}

	fields := []zap.Field{
		zap.Int("status", code),
		zap.String("method", c.Request().Method),
		zap.String("uri", c.Request().RequestURI),
		zap.Error(err),
	}
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", fields...)
	} else {
		h.log.Debug("request rejected", fields...)
	}

	var rErr error
	if code == http.StatusNotFound {
		rErr = h.notFound(c)
	} else {
		rErr = c.Render(code, views.Error, echo.Map{
			"status":  code,
			"message": message,
			"title":   titleError,
		})
	}
	if rErr != nil {
		h.log.Error("render error page", zap.Error(rErr))
		_ = c.String(code, message)
	}
}
