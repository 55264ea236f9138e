package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string
type PaymentMethod string

const (
	// Order statuses (set by the admin after the shopper submits)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by the bakery
	OrderStatusCompleted OrderStatus = "completed" // Delivered to the customer
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before delivery

	// Payment methods offered at checkout
	PaymentMethodCash     PaymentMethod = "cash"     // Pago contra entrega
	PaymentMethodTransfer PaymentMethod = "transfer" // Transferencia bancaria
)

type Order struct {
	ID              string        `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName    string        `gorm:"not null" json:"customer_name"`
	CustomerEmail   string        `gorm:"not null" json:"customer_email"`
	CustomerPhone   string        `gorm:"not null" json:"customer_phone"`
	DeliveryAddress string        `gorm:"not null" json:"delivery_address"`
	Notes           string        `json:"notes"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total           float64       `gorm:"not null" json:"total"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentMethod   PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	CreatedAt       time.Time     `json:"created_at"`
}

// OrderItem is a point-in-time copy of a cart line. Catalog edits after
// submission must never show through, so product fields are denormalized
// here instead of referenced.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	OrderID      string  `gorm:"type:uuid;index" json:"-"`
	ProductID    string  `json:"id"`
	ProductName  string  `json:"name"`
	ProductImage string  `json:"image"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// ShortID is the order reference shared with the customer over WhatsApp.
func (o *Order) ShortID() string {
	if len(o.ID) < 8 {
		return o.ID
	}
	return o.ID[:8]
}
