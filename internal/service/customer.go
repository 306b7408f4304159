package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

type CustomerService struct {
	Repo *repo.GormRepo
}

// Register creates the caller's customer profile and refreshes the user mirror's names.
func (s *CustomerService) Register(ctx context.Context, userID uuid.UUID, req transport.CreateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first_name and last_name required", ErrValidation)
	}
	if utf8.RuneCountInString(req.PhoneNumber) > 15 {
		return nil, fmt.Errorf("%w: phone_number longer than 15 characters", ErrValidation)
	}
	if utf8.RuneCountInString(req.Address) > 55 {
		return nil, fmt.Errorf("%w: address longer than 55 characters", ErrValidation)
	}

	user := &models.User{
		ID:        userID,
		Username:  strings.TrimSpace(req.Username),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	customer := &models.Customer{
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}

	if err := s.Repo.CreateCustomer(ctx, user, customer); err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: customer profile already exists", ErrConflict)
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Me(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	c, err := s.Repo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no customer profile", ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}
