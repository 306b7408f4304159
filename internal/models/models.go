package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User mirrors the account owned by the auth service; only the fields the
// marketplace needs for seller names are kept here.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"         json:"id"`
	Username  string    `gorm:"size:150;not null;default:''" json:"username"`
	FirstName string    `gorm:"not null;default:''"          json:"first_name"`
	LastName  string    `gorm:"not null;default:''"          json:"last_name"`
}

type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"            json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"  json:"user_id"`
	User        User      `gorm:"foreignKey:UserID"               json:"-"`
	PhoneNumber string    `gorm:"size:15"                         json:"phone_number"`
	Address     string    `gorm:"size:55"                         json:"address"`
	CreatedAt   time.Time `                                       json:"created_at"`
}

// Store is owned by exactly one customer; the unique index on customer_id is the
// authoritative one-store-per-customer guard.
type Store struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"            json:"id"`
	CustomerID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"  json:"customer_id"`
	Name        string    `gorm:"size:100;not null"               json:"name"`
	Description string    `gorm:"size:500;not null;default:''"    json:"description"`
	CreatedDate time.Time `gorm:"not null"                        json:"created_date"`
}

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"        json:"id"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;index;not null"    json:"customer_id"`
	Name        string          `gorm:"size:50;not null"            json:"name"`
	Description string          `gorm:"size:255;not null;default:''" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity    uint            `gorm:"not null;default:0"          json:"quantity"`
	Location    string          `gorm:"size:50"                     json:"location"`
	CreatedAt   time.Time       `                                   json:"created_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"                       json:"-"`
}

type PaymentType struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	CustomerID     uuid.UUID `gorm:"type:uuid;index;not null"  json:"customer_id"`
	MerchantName   string    `gorm:"size:25;not null"          json:"merchant_name"`
	AccountNumber  string    `gorm:"size:25;not null"          json:"account_number"`
	ExpirationDate time.Time `                                 json:"expiration_date"`
}

// Order is incomplete (an open cart) while PaymentTypeID is nil.
type Order struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"      json:"id"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index;not null"  json:"customer_id"`
	Customer      Customer   `gorm:"foreignKey:CustomerID"     json:"-"`
	PaymentTypeID *uuid.UUID `gorm:"type:uuid;index"           json:"payment_type_id"`
	CreatedAt     time.Time  `                                 json:"created_date"`
}

func (o Order) Completed() bool {
	return o.PaymentTypeID != nil
}

type OrderProduct struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"  json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"  json:"product_id"`
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error         { newID(&u.ID); return nil }
func (c *Customer) BeforeCreate(*gorm.DB) error     { newID(&c.ID); return nil }
func (p *Product) BeforeCreate(*gorm.DB) error      { newID(&p.ID); return nil }
func (p *PaymentType) BeforeCreate(*gorm.DB) error  { newID(&p.ID); return nil }
func (o *Order) BeforeCreate(*gorm.DB) error        { newID(&o.ID); return nil }
func (o *OrderProduct) BeforeCreate(*gorm.DB) error { newID(&o.ID); return nil }

func (s *Store) BeforeCreate(*gorm.DB) error {
	newID(&s.ID)
	if s.CreatedDate.IsZero() {
		s.CreatedDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return nil
}

// All lists every table in migration order.
func All() []any {
	return []any{
		&User{},
		&Customer{},
		&Store{},
		&Product{},
		&PaymentType{},
		&Order{},
		&OrderProduct{},
	}
}
