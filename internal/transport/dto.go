package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type StoreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SellerResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type StoreListItem struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Seller       SellerResponse `json:"seller"`
	SellerName   string         `json:"seller_name"`
	ProductCount int64          `json:"product_count"`
}

type StoreResponse struct {
	StoreListItem
	Products    []ProductResponse `json:"products"`
	CreatedDate string            `json:"created_date"`
}

type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    uint            `json:"quantity"`
	Location    string          `json:"location"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	CreatedDate string          `json:"created_date"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    uint            `json:"quantity"`
	Location    string          `json:"location"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *uint            `json:"quantity"`
	Location    *string          `json:"location"`
}

type CreateCustomerRequest struct {
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
}

type OrderReportLine struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	PaymentTypeID *uuid.UUID `json:"payment_type_id"`
	CreatedDate   string     `json:"created_date"`
	Total         string     `json:"total"`
}

type OrdersReport struct {
	Status string            `json:"status"`
	Orders []OrderReportLine `json:"orders"`
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
