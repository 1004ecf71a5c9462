package models

import "time"

// OrderPaidEvent is published (best-effort) after a settlement transaction
// commits, so downstream consumers can react without being in the webhook's
// critical path.
type OrderPaidEvent struct {
	Type          string    `json:"type"` // "order_paid"
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	PaymentID     string    `json:"payment_id"`
	GrossAmount   int64     `json:"gross_amount"`
	TicketsIssued int       `json:"tickets_issued"`
	Timestamp     time.Time `json:"timestamp"`
}
