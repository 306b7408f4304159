package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

type ReportHTTP struct {
	Svc *service.ReportService
}

// OrdersReport answers JSON unless the client asks for text/html.
func (h *ReportHTTP) OrdersReport(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "report.orders")

	status := domain.ParseOrderStatus(c.QueryParam("status"))

	report, err := h.Svc.OrdersReport(ctx, status)
	if err != nil {
		return fail(l, "orders_report_error", err)
	}

	body := ordersReport(report)
	l.Info("orders_report_success", "filter", string(status), "orders", len(body.Orders))

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML) {
		return c.Render(http.StatusOK, ordersReportTemplate, body)
	}
	return c.JSON(http.StatusOK, body)
}
