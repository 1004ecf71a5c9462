package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment statuses mirror the gateway's transaction-status vocabulary where a
// notification carries one; unmapped values are stored as received so a new
// gateway status never corrupts order state.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusSettlement = "settlement"
	PaymentStatusDeny       = "deny"
	PaymentStatusCancel     = "cancel"
	PaymentStatusExpire     = "expire"
)

type Payment struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID       uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	TransactionID *string        `gorm:"type:varchar(128)" json:"transaction_id,omitempty"`
	GrossAmount   int64          `gorm:"not null" json:"gross_amount"`
	Status        string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SettledAt     *time.Time     `json:"settled_at,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
