package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/williamkalogeropoulos/AegisBank/internal/domain/errs"
	"github.com/williamkalogeropoulos/AegisBank/internal/logger"
)

// respondError maps the domain error taxonomy onto HTTP status codes. Unknown
// errors are logged and hidden behind a plain 500.
func respondError(c echo.Context, err error) error {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	case errors.Is(err, errs.ErrInsufficientFunds):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "insufficient funds"})
	case errors.Is(err, errs.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, errs.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, errs.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "invalid status transition"})
	case errors.Is(err, errs.ErrConcurrency):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "concurrent modification, retry"})
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict"})
	default:
		logger.Log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
