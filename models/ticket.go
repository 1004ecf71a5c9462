package models

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is one issued, scannable proof of purchase for one reservable unit.
// Rows are insert-only from the issuance path; the used flag is flipped by
// the redemption flow, which lives outside this service.
type Ticket struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null" json:"order_item_id"`
	Payload     string    `gorm:"type:text;not null" json:"-"`
	QRImage     string    `gorm:"type:text" json:"-"` // base64 PNG
	Used        bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TicketPayload is the structure encoded into a ticket's QR code. It is
// opaque to holders; only the redemption scanner parses it back.
type TicketPayload struct {
	Type        string    `json:"type"` // always "ticket"
	OrderID     string    `json:"order_id"`
	OrderItemID string    `json:"order_item_id"`
	ProductName string    `json:"product_name"`
	IssuedAt    time.Time `json:"issued_at"`
}

const TicketPayloadType = "ticket"
