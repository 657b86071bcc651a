package http

import (
	"errors"
	"fmt"
	"net/http"

	"foodify/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgValidation    = "Validation error"
	msgInvalidID     = "Invalid id"
	msgInvalidStatus = "Invalid status"
	msgInvalidBody   = "Invalid request body"
	msgNotFound      = "Order not found"
	msgInternal      = "Internal Server Error"
)

// NewErrorHandler turns handler errors into JSON responses. Server errors are
// logged through the zap global unless quiet is set.
func NewErrorHandler(quiet bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := translateError(err)

		if status >= http.StatusInternalServerError && !quiet {
			zap.L().Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			zap.L().Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

func translateError(err error) (int, Error) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, Error{Message: httpMessage(httpErr)}
	}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, Error{Message: msgValidation, Errors: validationErr.Fields}
	}

	var conflictErr *errs.ConflictError
	switch {
	case errors.Is(err, errs.ErrMalformedReference):
		return http.StatusBadRequest, Error{Message: msgInvalidID}
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest, Error{Message: msgValidation, Errors: errs.NewValidationError(err).Fields}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, Error{Message: msgNotFound}
	case errors.As(err, &conflictErr):
		return http.StatusConflict, Error{Message: conflictErr.Reason}
	default:
		return http.StatusInternalServerError, Error{Message: msgInternal}
	}
}

func httpMessage(httpErr *echo.HTTPError) string {
	if msg, ok := httpErr.Message.(string); ok && msg != "" {
		return msg
	}
	if text := http.StatusText(httpErr.Code); text != "" {
		return text
	}
	return fmt.Sprint(httpErr.Message)
}
