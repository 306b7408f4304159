package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/service"
	middleware "github.com/Skotchmaster/marketplace/pkg/middleware/auth"
)

var errUnauthorized = errors.New("unauthorized")

// GetID returns the caller identity the auth middleware resolved from the access token.
func GetID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(middleware.CtxUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, errUnauthorized
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errUnauthorized
	}
	return userID, nil
}

func parseID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// fail maps service errors onto HTTP errors and logs them under event. Anything that is
// not a service sentinel is answered with a generic 500.
func fail(l *slog.Logger, event string, err error) error {
	var (
		status int
		msg    string
	)
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrSearchDisabled):
		status, msg = http.StatusServiceUnavailable, "search is not configured"
	default:
		l.Error(event, "status", http.StatusInternalServerError, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Warn(event, "status", status, "reason", msg)
	return echo.NewHTTPError(status, msg)
}
