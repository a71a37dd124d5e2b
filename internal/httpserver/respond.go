package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotbrew/cafe-order/internal/service"
)

// serviceError maps the service sentinel taxonomy onto HTTP statuses:
// validation 400, not found 404, conflict 409, anything else a generic 500.
func serviceError(l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(op, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		l.Warn(op, "status", 409, "error", err)
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		l.Error(op, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
