package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

const maxProductName = 50

type ProductService struct {
	Repo *repo.GormRepo
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxProductName {
		return fmt.Errorf("%w: name longer than %d characters", ErrValidation, maxProductName)
	}
	return nil
}

func validatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *ProductService) CreateProduct(ctx context.Context, userID uuid.UUID, req transport.CreateProductRequest) (*models.Product, error) {
	customer, err := s.owner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := validateProductName(req.Name); err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	p := &models.Product{
		CustomerID:  customer.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price.Round(2),
		Quantity:    req.Quantity,
		Location:    req.Location,
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) PatchProduct(ctx context.Context, userID, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	p, err := s.ownedProduct(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := validateProductName(*req.Name); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		rounded := req.Price.Round(2)
		req.Price = &rounded
	}

	if err := s.Repo.PatchProduct(ctx, p, req); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct soft-deletes; orders that reference the product keep pricing it.
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, userID, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *ProductService) owner(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	customer, err := s.Repo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer profile required", ErrForbidden)
		}
		return nil, err
	}
	return customer, nil
}

func (s *ProductService) ownedProduct(ctx context.Context, userID, id uuid.UUID) (*models.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := s.owner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.CustomerID != customer.ID {
		return nil, fmt.Errorf("%w: product belongs to another customer", ErrForbidden)
	}
	return p, nil
}
