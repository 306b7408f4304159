package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/marketplace/internal/models"
)

func (r *GormRepo) GetCustomerByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) GetCustomersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Customer, error) {
	out := make(map[uuid.UUID]models.Customer, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var customers []models.Customer
	if err := r.DB.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&customers).Error; err != nil {
		return nil, err
	}
	for _, c := range customers {
		out[c.ID] = c
	}
	return out, nil
}

// CreateCustomer upserts the user mirror and inserts the customer in one transaction.
// A second customer for the same user fails on the user_id unique index.
func (r *GormRepo) CreateCustomer(ctx context.Context, user *models.User, customer *models.Customer) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name"}),
		}).Create(user).Error; err != nil {
			return err
		}

		customer.UserID = user.ID
		if err := tx.Omit(clause.Associations).Create(customer).Error; err != nil {
			return err
		}
		customer.User = *user
		return nil
	})
}
