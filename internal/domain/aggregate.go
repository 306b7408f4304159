// Package domain holds the derived values the marketplace computes on every read:
// order totals, seller names and product counts. Everything here is a pure function of
// entity snapshots so it can be tested without a database.
package domain

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/marketplace/internal/models"
)

type StoreDetails struct {
	Store        models.Store
	Seller       models.Customer
	SellerName   string
	ProductCount int64
	Products     []models.Product
}

type OrderLine struct {
	Order        models.Order
	CustomerName string
	Total        decimal.Decimal
	// Missing counts line items whose product row no longer exists; they are left out of Total.
	Missing int
}

func SellerName(u models.User) string {
	return u.FirstName + " " + u.LastName
}

// OrderTotal sums the current price of every product referenced by items. Items pointing
// at a product absent from prices are skipped and counted in missing.
func OrderTotal(items []models.OrderProduct, prices map[uuid.UUID]decimal.Decimal) (total decimal.Decimal, missing int) {
	total = lo.Reduce(items, func(acc decimal.Decimal, it models.OrderProduct, _ int) decimal.Decimal {
		price, ok := prices[it.ProductID]
		if !ok {
			missing++
			return acc
		}
		return acc.Add(price)
	}, decimal.Zero)
	return total, missing
}

// FormatTotal renders an amount with grouped thousands and two decimals: 1234.5 -> "1,234.50".
func FormatTotal(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + humanize.Comma(n) + "." + frac
}

func EnrichStore(store models.Store, seller models.Customer, productCount int64, products []models.Product) StoreDetails {
	return StoreDetails{
		Store:        store,
		Seller:       seller,
		SellerName:   SellerName(seller.User),
		ProductCount: productCount,
		Products:     products,
	}
}

// EnrichStores joins stores with their owners, live product counts and (optionally) the
// owners' products. A store whose owner is absent from sellers gets a zero Customer.
func EnrichStores(
	stores []models.Store,
	sellers map[uuid.UUID]models.Customer,
	counts map[uuid.UUID]int64,
	products map[uuid.UUID][]models.Product,
) []StoreDetails {
	return lo.Map(stores, func(s models.Store, _ int) StoreDetails {
		var owned []models.Product
		if products != nil {
			owned = products[s.CustomerID]
			if owned == nil {
				owned = []models.Product{}
			}
		}
		return EnrichStore(s, sellers[s.CustomerID], counts[s.CustomerID], owned)
	})
}

// BuildOrderLines computes one report line per order, preserving the order of orders.
func BuildOrderLines(
	orders []models.Order,
	items []models.OrderProduct,
	prices map[uuid.UUID]decimal.Decimal,
) []OrderLine {
	byOrder := lo.GroupBy(items, func(it models.OrderProduct) uuid.UUID { return it.OrderID })

	return lo.Map(orders, func(o models.Order, _ int) OrderLine {
		total, missing := OrderTotal(byOrder[o.ID], prices)
		return OrderLine{
			Order:        o,
			CustomerName: SellerName(o.Customer.User),
			Total:        total,
			Missing:      missing,
		}
	})
}

func ProductIDs(items []models.OrderProduct) []uuid.UUID {
	return lo.Uniq(lo.Map(items, func(it models.OrderProduct, _ int) uuid.UUID { return it.ProductID }))
}

func OwnerIDs(stores []models.Store) []uuid.UUID {
	return lo.Uniq(lo.Map(stores, func(s models.Store, _ int) uuid.UUID { return s.CustomerID }))
}
