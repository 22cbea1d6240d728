package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values. Canceled is terminal: a canceled order never mutates
// stock or payment fields again.
const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusCanceled = "canceled"
)

// Order is one placed rental order. Line items live in order_items and are
// written in the same transaction as the order; they are immutable after
// creation and always loaded together with the order.
type Order struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string         `gorm:"size:64;not null;index" json:"user_id"`
	UserName        string         `gorm:"size:255;not null" json:"user_name"`
	UserEmail       string         `gorm:"size:255;not null" json:"user_email"`
	UserPhone       string         `gorm:"size:20;not null" json:"user_phone"`
	UserAddress     string         `gorm:"size:500;not null" json:"user_address"`
	ShippingAddress string         `gorm:"size:500;not null" json:"shipping_address"`
	UserCity        string         `gorm:"size:100;not null" json:"user_city"`
	UserZip         string         `gorm:"size:10;not null" json:"user_zip"`
	BillingNumber   string         `gorm:"size:50" json:"billing_number"`
	PaidPayment     float64        `gorm:"not null" json:"paid_payment"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	PendingPayment  float64        `gorm:"not null" json:"pending_payment"`
	Status          string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DeliveredDate   time.Time      `gorm:"not null;index" json:"delivered_date"`
	PickupTime      *time.Time     `gorm:"index" json:"pickup_time"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Items           []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a single product + quantity line within an order. From records
// where the line originated (e.g. the cart page or a staff-entered order).
type OrderItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	From         string    `gorm:"size:255;not null" json:"From"`
	ProductPrice float64   `gorm:"not null" json:"product_price"`
	TotalPrice   float64   `gorm:"not null" json:"total_price"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// PaymentLog is the append-only ledger of payments against orders. One row is
// written for the initial payment at order creation and one per later
// pending-payment application; rows are never updated or deleted.
type PaymentLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	UserID        string    `gorm:"size:64;not null;index" json:"user_id"`
	PaymentAmount float64   `gorm:"not null" json:"payment_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func (l *PaymentLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (PaymentLog) TableName() string { return "orderpayment_logs" }

// CartLine is a cart row owned by the cart feature; this service only ever
// deletes a user's lines when an order is placed with type=checkout.
type CartLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CartLine) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
