// Package testutil builds throwaway sqlite databases and seed rows for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
	pkgdb "github.com/Skotchmaster/marketplace/pkg/db"
)

// NewDB opens a private in-memory database with the full schema migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), pkgdb.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func SeedCustomer(t testing.TB, db *gorm.DB, first, last string) models.Customer {
	t.Helper()

	user := models.User{ID: uuid.New(), Username: first + "." + last, FirstName: first, LastName: last}
	require.NoError(t, db.Create(&user).Error)

	customer := models.Customer{UserID: user.ID, PhoneNumber: "555-0100", Address: "1 Main St"}
	require.NoError(t, db.Omit("User").Create(&customer).Error)
	customer.User = user
	return customer
}

func SeedProduct(t testing.TB, db *gorm.DB, owner uuid.UUID, name, price string) models.Product {
	t.Helper()

	p := models.Product{
		CustomerID: owner,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Quantity:   1,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func SeedStore(t testing.TB, db *gorm.DB, owner uuid.UUID, name string) models.Store {
	t.Helper()

	s := models.Store{CustomerID: owner, Name: name}
	require.NoError(t, db.Create(&s).Error)
	return s
}

// SeedOrder creates an order for customer linking every product in productIDs. A nil
// paymentType leaves the order incomplete.
func SeedOrder(t testing.TB, db *gorm.DB, customer uuid.UUID, paymentType *uuid.UUID, productIDs ...uuid.UUID) models.Order {
	t.Helper()

	o := models.Order{CustomerID: customer, PaymentTypeID: paymentType}
	require.NoError(t, db.Omit("Customer").Create(&o).Error)
	for _, pid := range productIDs {
		require.NoError(t, db.Create(&models.OrderProduct{OrderID: o.ID, ProductID: pid}).Error)
	}
	return o
}

func SeedPaymentType(t testing.TB, db *gorm.DB, customer uuid.UUID) models.PaymentType {
	t.Helper()

	pt := models.PaymentType{CustomerID: customer, MerchantName: "Visa", AccountNumber: "4111"}
	require.NoError(t, db.WithContext(context.Background()).Create(&pt).Error)
	return pt
}
