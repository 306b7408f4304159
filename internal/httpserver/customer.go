package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

type CustomerHTTP struct {
	Svc *service.CustomerService
}

func (h *CustomerHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.register")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("register_customer_error", "status", 401, "reason", "no caller identity", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_customer_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Svc.Register(ctx, userID, req)
	if err != nil {
		return fail(l, "register_customer_error", err)
	}

	l.Info("register_customer_success", "customer_id", customer.ID)
	return c.JSON(http.StatusCreated, customerResponse(*customer))
}

func (h *CustomerHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.me")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("get_customer_error", "status", 401, "reason", "no caller identity", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	customer, err := h.Svc.Me(ctx, userID)
	if err != nil {
		return fail(l, "get_customer_error", err)
	}

	return c.JSON(http.StatusOK, customerResponse(*customer))
}
