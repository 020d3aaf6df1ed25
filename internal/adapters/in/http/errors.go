package http

import (
	"errors"
	"log/slog"
	"net/http"

	"foodorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an application error to its HTTP status. Lifecycle
// conflicts are checked before validation because a rejected transition
// arrives wrapped in a *errs.ValidationError.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrTransient):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(ctx echo.Context, err error) error {
	code := statusOf(err)
	body := Error{Code: code, Message: err.Error()}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
	}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		body.Faults = make([]Fault, 0, len(validationErr.Faults))
		for _, f := range validationErr.Faults {
			body.Faults = append(body.Faults, Fault{Field: f.Field, Message: f.Message})
		}
	}

	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.Int("status", code),
			slog.Any("error", err),
		)
		if code == http.StatusInternalServerError {
			body.Message = http.StatusText(code)
		}
	}

	return ctx.JSON(code, body)
}

func badRequest(what string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, what+": "+err.Error())
}
