package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrderTotal(t *testing.T) {
	t.Parallel()

	p1, p2, gone := uuid.New(), uuid.New(), uuid.New()
	order := uuid.New()
	prices := map[uuid.UUID]decimal.Decimal{
		p1: dec("10.00"),
		p2: dec("5.50"),
	}

	tests := []struct {
		name        string
		items       []models.OrderProduct
		wantTotal   string
		wantMissing int
	}{
		{name: "no line items", items: nil, wantTotal: "0", wantMissing: 0},
		{
			name:      "two products",
			items:     []models.OrderProduct{{OrderID: order, ProductID: p1}, {OrderID: order, ProductID: p2}},
			wantTotal: "15.5",
		},
		{
			name:      "same product twice counts twice",
			items:     []models.OrderProduct{{OrderID: order, ProductID: p2}, {OrderID: order, ProductID: p2}},
			wantTotal: "11",
		},
		{
			name:        "dangling product skipped",
			items:       []models.OrderProduct{{OrderID: order, ProductID: p1}, {OrderID: order, ProductID: gone}},
			wantTotal:   "10",
			wantMissing: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			total, missing := OrderTotal(tt.items, prices)
			assert.True(t, dec(tt.wantTotal).Equal(total), "got %s", total)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestFormatTotal(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"0":          "0.00",
		"15.5":       "15.50",
		"1234.5":     "1,234.50",
		"999.999":    "1,000.00",
		"1000000":    "1,000,000.00",
		"12345.67":   "12,345.67",
		"0.1":        "0.10",
		"1234567.89": "1,234,567.89",
		"-1234.5":    "-1,234.50",

		"12345678901234567.89": "12,345,678,901,234,567.89",
	}

	for in, want := range tests {
		assert.Equal(t, want, FormatTotal(dec(in)), "input %s", in)
	}
}

func TestSellerName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jane Doe", SellerName(models.User{FirstName: "Jane", LastName: "Doe"}))
	assert.Equal(t, " ", SellerName(models.User{}))
}

func TestEnrichStores(t *testing.T) {
	t.Parallel()

	jane := models.Customer{ID: uuid.New(), User: models.User{FirstName: "Jane", LastName: "Doe"}}
	john := models.Customer{ID: uuid.New(), User: models.User{FirstName: "John", LastName: "Roe"}}
	stores := []models.Store{
		{ID: uuid.New(), CustomerID: jane.ID, Name: "Jane's Shop"},
		{ID: uuid.New(), CustomerID: john.ID, Name: "John's Shop"},
	}
	sellers := map[uuid.UUID]models.Customer{jane.ID: jane, john.ID: john}
	counts := map[uuid.UUID]int64{jane.ID: 2}
	products := map[uuid.UUID][]models.Product{
		jane.ID: {{Name: "a"}, {Name: "b"}},
	}

	got := EnrichStores(stores, sellers, counts, products)
	require.Len(t, got, 2)

	assert.Equal(t, "Jane Doe", got[0].SellerName)
	assert.EqualValues(t, 2, got[0].ProductCount)
	assert.Len(t, got[0].Products, 2)

	assert.Equal(t, "John Roe", got[1].SellerName)
	assert.EqualValues(t, 0, got[1].ProductCount)
	assert.NotNil(t, got[1].Products)
	assert.Empty(t, got[1].Products)

	light := EnrichStores(stores, sellers, counts, nil)
	assert.Nil(t, light[0].Products)
}

func TestBuildOrderLines(t *testing.T) {
	t.Parallel()

	p1, p2 := uuid.New(), uuid.New()
	o1 := models.Order{ID: uuid.New(), Customer: models.Customer{User: models.User{FirstName: "Jane", LastName: "Doe"}}}
	o2 := models.Order{ID: uuid.New()}
	items := []models.OrderProduct{
		{OrderID: o1.ID, ProductID: p1},
		{OrderID: o1.ID, ProductID: p2},
		{OrderID: o2.ID, ProductID: uuid.New()},
	}
	prices := map[uuid.UUID]decimal.Decimal{p1: dec("10.00"), p2: dec("5.50")}

	lines := BuildOrderLines([]models.Order{o1, o2}, items, prices)
	require.Len(t, lines, 2)

	assert.Equal(t, o1.ID, lines[0].Order.ID)
	assert.Equal(t, "Jane Doe", lines[0].CustomerName)
	assert.Equal(t, "15.50", FormatTotal(lines[0].Total))

	assert.True(t, lines[1].Total.IsZero())
	assert.Equal(t, 1, lines[1].Missing)
}

func TestProductIDs_Unique(t *testing.T) {
	t.Parallel()

	p := uuid.New()
	ids := ProductIDs([]models.OrderProduct{{ProductID: p}, {ProductID: p}, {ProductID: uuid.New()}})
	assert.Len(t, ids, 2)
	assert.Equal(t, p, ids[0])
}
