package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order lifecycle statuses. The settlement pipeline only ever moves an order
// from pending to paid or cancelled; shipped/completed belong to fulfillment
// flows outside this service and matter here only as revenue-eligible states.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
)

type Order struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Total      int64          `gorm:"not null" json:"total"` // minor units (rupiah)
	ServiceFee int64          `gorm:"not null;default:0" json:"service_fee"`
	Status     string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt     *time.Time     `json:"paid_at,omitempty"`
	CanceledAt *time.Time     `json:"canceled_at,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Items      []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Price     int64     `gorm:"not null" json:"price"` // unit price at purchase time
	Quantity  int       `gorm:"not null" json:"quantity"`
}

// Subtotal returns the gross value of this line.
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}
