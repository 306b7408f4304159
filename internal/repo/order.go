package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/models"
)

func (r *GormRepo) ListOrders(ctx context.Context, status domain.OrderStatus) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Preload("Customer.User")

	switch status {
	case domain.StatusIncomplete:
		q = q.Where("payment_type_id IS NULL")
	case domain.StatusComplete:
		q = q.Where("payment_type_id IS NOT NULL")
	}

	var orders []models.Order
	if err := q.Order("created_at ASC, id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListOrderProducts(ctx context.Context, orderIDs []uuid.UUID) ([]models.OrderProduct, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	var items []models.OrderProduct
	if err := r.DB.WithContext(ctx).Where("order_id IN ?", orderIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
