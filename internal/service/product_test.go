package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/testutil"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

func newProductService(t *testing.T) (*ProductService, *repo.GormRepo) {
	t.Helper()
	r := &repo.GormRepo{DB: testutil.NewDB(t)}
	return &ProductService{Repo: r}, r
}

func TestProductService_CreateProduct(t *testing.T) {
	svc, r := newProductService(t)
	ctx := context.Background()
	c := testutil.SeedCustomer(t, r.DB, "Jane", "Doe")

	p, err := svc.CreateProduct(ctx, c.UserID, transport.CreateProductRequest{
		Name:     " lamp ",
		Price:    decimal.RequireFromString("12.499"),
		Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, p.CustomerID)
	assert.Equal(t, "lamp", p.Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(p.Price))
}

func TestProductService_CreateProduct_Rejects(t *testing.T) {
	svc, r := newProductService(t)
	ctx := context.Background()
	c := testutil.SeedCustomer(t, r.DB, "Jane", "Doe")

	_, err := svc.CreateProduct(ctx, uuid.New(), transport.CreateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateProduct(ctx, c.UserID, transport.CreateProductRequest{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, c.UserID, transport.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductService_PatchProduct_OwnerOnly(t *testing.T) {
	svc, r := newProductService(t)
	ctx := context.Background()
	owner := testutil.SeedCustomer(t, r.DB, "Jane", "Doe")
	other := testutil.SeedCustomer(t, r.DB, "John", "Roe")
	p := testutil.SeedProduct(t, r.DB, owner.ID, "lamp", "12.00")

	name := "stolen"
	_, err := svc.PatchProduct(ctx, other.UserID, p.ID, transport.PatchProductRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.PatchProduct(ctx, owner.UserID, uuid.New(), transport.PatchProductRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	neg := decimal.NewFromInt(-5)
	_, err = svc.PatchProduct(ctx, owner.UserID, p.ID, transport.PatchProductRequest{Price: &neg})
	assert.ErrorIs(t, err, ErrValidation)

	qty := uint(9)
	got, err := svc.PatchProduct(ctx, owner.UserID, p.ID, transport.PatchProductRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.EqualValues(t, 9, got.Quantity)
	assert.Equal(t, "lamp", got.Name)
}

func TestProductService_DeleteProduct(t *testing.T) {
	svc, r := newProductService(t)
	ctx := context.Background()
	owner := testutil.SeedCustomer(t, r.DB, "Jane", "Doe")
	other := testutil.SeedCustomer(t, r.DB, "John", "Roe")
	p := testutil.SeedProduct(t, r.DB, owner.ID, "lamp", "12.00")

	assert.ErrorIs(t, svc.DeleteProduct(ctx, other.UserID, p.ID), ErrForbidden)
	require.NoError(t, svc.DeleteProduct(ctx, owner.UserID, p.ID))

	_, err := svc.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, owner.UserID, p.ID), ErrNotFound)
}
