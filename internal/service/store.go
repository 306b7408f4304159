package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/search"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/internal/util"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

const (
	StoreEventsTopic = "store_events"

	maxStoreName        = 100
	maxStoreDescription = 500
	sideEffectTimeout   = 5 * time.Second
)

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type StoreIndexer interface {
	IndexStore(ctx context.Context, doc search.StoreDocument) error
	Search(ctx context.Context, query string, from, size int) (int64, []search.StoreDocument, error)
}

// StoreService owns store access control. Events and Index are optional; when set,
// failures there are logged and never fail the request.
type StoreService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Index  StoreIndexer
}

func validateStore(req transport.StoreRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if utf8.RuneCountInString(req.Name) > maxStoreName {
		return fmt.Errorf("%w: name longer than %d characters", ErrValidation, maxStoreName)
	}
	if utf8.RuneCountInString(req.Description) > maxStoreDescription {
		return fmt.Errorf("%w: description longer than %d characters", ErrValidation, maxStoreDescription)
	}
	return nil
}

func (s *StoreService) customerFor(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	customer, err := s.Repo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer profile required", ErrForbidden)
		}
		return nil, err
	}
	return customer, nil
}

func (s *StoreService) CreateStore(ctx context.Context, userID uuid.UUID, req transport.StoreRequest) (*domain.StoreDetails, error) {
	customer, err := s.customerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	// An owner's second create is a conflict whatever the body holds.
	n, err := s.Repo.CountStoresByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: customer already has a store", ErrConflict)
	}
	if err := validateStore(req); err != nil {
		return nil, err
	}

	store := &models.Store{
		CustomerID:  customer.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := s.Repo.CreateStore(ctx, store); err != nil {
		if errors.Is(err, repo.ErrStoreExists) {
			return nil, fmt.Errorf("%w: customer already has a store", ErrConflict)
		}
		return nil, err
	}

	details, err := s.details(ctx, *store, *customer)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, "store_created", details)
	return details, nil
}

// UpdateStore checks existence before ownership: a missing store is NotFound for every caller.
func (s *StoreService) UpdateStore(ctx context.Context, userID, storeID uuid.UUID, req transport.StoreRequest) error {
	store, err := s.Repo.GetStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: store %s", ErrNotFound, storeID)
		}
		return err
	}

	customer, err := s.customerFor(ctx, userID)
	if err != nil {
		return err
	}
	if store.CustomerID != customer.ID {
		return fmt.Errorf("%w: store belongs to another customer", ErrForbidden)
	}
	if err := validateStore(req); err != nil {
		return err
	}

	name := strings.TrimSpace(req.Name)
	n, err := s.Repo.UpdateStore(ctx, store.ID, customer.ID, name, req.Description)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: store %s", ErrNotFound, storeID)
	}

	store.Name = name
	store.Description = req.Description
	details, err := s.details(ctx, *store, *customer)
	if err != nil {
		return err
	}

	s.afterWrite(ctx, "store_updated", details)
	return nil
}

func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*domain.StoreDetails, error) {
	store, err := s.Repo.GetStore(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: store %s", ErrNotFound, id)
		}
		return nil, err
	}

	sellers, err := s.Repo.GetCustomersByIDs(ctx, []uuid.UUID{store.CustomerID})
	if err != nil {
		return nil, err
	}
	return s.details(ctx, *store, sellers[store.CustomerID])
}

// ListStores returns stores whose owner sells at least one product. Without products the
// per-store product lists are not loaded at all.
func (s *StoreService) ListStores(ctx context.Context, includeProducts bool) ([]domain.StoreDetails, error) {
	stores, err := s.Repo.ListStoresWithProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return []domain.StoreDetails{}, nil
	}

	owners := domain.OwnerIDs(stores)
	sellers, err := s.Repo.GetCustomersByIDs(ctx, owners)
	if err != nil {
		return nil, err
	}
	counts, err := s.Repo.CountProductsByCustomers(ctx, owners)
	if err != nil {
		return nil, err
	}

	var products map[uuid.UUID][]models.Product
	if includeProducts {
		if products, err = s.Repo.ListProductsByCustomers(ctx, owners); err != nil {
			return nil, err
		}
	}
	return domain.EnrichStores(stores, sellers, counts, products), nil
}

func (s *StoreService) SearchStores(ctx context.Context, query string, page, size int) (int64, []search.StoreDocument, error) {
	if s.Index == nil {
		return 0, nil, ErrSearchDisabled
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, fmt.Errorf("%w: q required", ErrValidation)
	}
	from, limit := util.Calculate(page, size)
	return s.Index.Search(ctx, query, from, limit)
}

func (s *StoreService) details(ctx context.Context, store models.Store, seller models.Customer) (*domain.StoreDetails, error) {
	owner := []uuid.UUID{store.CustomerID}
	counts, err := s.Repo.CountProductsByCustomers(ctx, owner)
	if err != nil {
		return nil, err
	}
	products, err := s.Repo.ListProductsByCustomers(ctx, owner)
	if err != nil {
		return nil, err
	}
	owned := products[store.CustomerID]
	if owned == nil {
		owned = []models.Product{}
	}

	d := domain.EnrichStore(store, seller, counts[store.CustomerID], owned)
	return &d, nil
}

func (s *StoreService) afterWrite(ctx context.Context, eventType string, d *domain.StoreDetails) {
	l := logging.FromContext(ctx).With("store_id", d.Store.ID)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if s.Events != nil {
		event := map[string]any{
			"type":       eventType,
			"storeID":    d.Store.ID,
			"customerID": d.Store.CustomerID,
			"name":       d.Store.Name,
			"at":         time.Now().UTC(),
		}
		if err := s.Events.PublishEvent(ctx, StoreEventsTopic, d.Store.ID.String(), event); err != nil {
			l.Error("store_event_publish_failed", "event", eventType, "error", err)
		}
	}

	if s.Index != nil {
		if err := s.Index.IndexStore(ctx, StoreDocument(d)); err != nil {
			l.Error("store_index_failed", "error", err)
		}
	}
}

func StoreDocument(d *domain.StoreDetails) search.StoreDocument {
	return search.StoreDocument{
		ID:           d.Store.ID,
		Name:         d.Store.Name,
		Description:  d.Store.Description,
		SellerName:   d.SellerName,
		ProductCount: d.ProductCount,
		CreatedDate:  transport.FormatDate(d.Store.CreatedDate),
	}
}
