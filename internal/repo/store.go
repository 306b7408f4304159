package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
)

var ErrStoreExists = errors.New("customer already has a store")

const liveProductsExist = "EXISTS (SELECT 1 FROM products WHERE products.customer_id = stores.customer_id AND products.deleted_at IS NULL)"

func (r *GormRepo) GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// CreateStore checks and inserts inside one transaction. The unique index on
// stores.customer_id still decides races between concurrent creators.
func (r *GormRepo) CreateStore(ctx context.Context, store *models.Store) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Store{}).Where("customer_id = ?", store.CustomerID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrStoreExists
		}

		if err := tx.Create(store).Error; err != nil {
			if IsUniqueViolation(err) {
				return ErrStoreExists
			}
			return err
		}
		return nil
	})
}

// UpdateStore only touches the row when it is still owned by customerID.
func (r *GormRepo) UpdateStore(ctx context.Context, id, customerID uuid.UUID, name, description string) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ? AND customer_id = ?", id, customerID).
		Updates(map[string]any{"name": name, "description": description})
	return res.RowsAffected, res.Error
}

// ListStoresWithProducts returns each store whose owner has at least one live product, once.
func (r *GormRepo) ListStoresWithProducts(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := r.DB.WithContext(ctx).
		Model(&models.Store{}).
		Where(liveProductsExist).
		Order("created_date ASC, id ASC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *GormRepo) CountStoresByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Store{}).Where("customer_id = ?", customerID).Count(&count).Error
	return count, err
}
