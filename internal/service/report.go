package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

type ReportService struct {
	Repo *repo.GormRepo
}

type OrdersReport struct {
	Status domain.OrderStatus
	Lines  []domain.OrderLine
}

// OrdersReport lists orders matching status with their totals. It never fails on
// line items whose product row is gone; those are logged and left out of the total.
func (s *ReportService) OrdersReport(ctx context.Context, status domain.OrderStatus) (*OrdersReport, error) {
	orders, err := s.Repo.ListOrders(ctx, status)
	if err != nil {
		return nil, err
	}

	orderIDs := lo.Map(orders, func(o models.Order, _ int) uuid.UUID { return o.ID })
	items, err := s.Repo.ListOrderProducts(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	prices, err := s.Repo.PricesByProductIDs(ctx, domain.ProductIDs(items))
	if err != nil {
		return nil, err
	}

	lines := domain.BuildOrderLines(orders, items, prices)

	l := logging.FromContext(ctx)
	for _, line := range lines {
		if line.Missing > 0 {
			l.Warn("order_total_missing_products", "order_id", line.Order.ID, "missing", line.Missing)
		}
	}

	return &OrdersReport{Status: status, Lines: lines}, nil
}
