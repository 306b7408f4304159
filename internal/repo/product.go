package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, prod *models.Product, req transport.PatchProductRequest) error {
	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Quantity != nil {
		prod.Quantity = *req.Quantity
	}
	if req.Location != nil {
		prod.Location = *req.Location
	}

	return r.DB.WithContext(ctx).Save(prod).Error
}

// DeleteProduct is a soft delete so past orders can still price the product.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountProductsByCustomers counts live products per owner. Owners without products are absent.
func (r *GormRepo) CountProductsByCustomers(ctx context.Context, customerIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(customerIDs))
	if len(customerIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		CustomerID uuid.UUID
		Count      int64
	}
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select("customer_id, COUNT(*) AS count").
		Where("customer_id IN ? AND deleted_at IS NULL", customerIDs).
		Group("customer_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.CustomerID] = row.Count
	}
	return out, nil
}

func (r *GormRepo) ListProductsByCustomers(ctx context.Context, customerIDs []uuid.UUID) (map[uuid.UUID][]models.Product, error) {
	if len(customerIDs) == 0 {
		return map[uuid.UUID][]models.Product{}, nil
	}

	var products []models.Product
	if err := r.DB.WithContext(ctx).
		Where("customer_id IN ?", customerIDs).
		Order("created_at ASC, id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return lo.GroupBy(products, func(p models.Product) uuid.UUID { return p.CustomerID }), nil
}

// PricesByProductIDs includes soft-deleted products; only rows that are gone entirely are missing.
func (r *GormRepo) PricesByProductIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	out := make(map[uuid.UUID]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var products []models.Product
	if err := r.DB.WithContext(ctx).
		Unscoped().
		Select("id", "price").
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ID] = p.Price
	}
	return out, nil
}
