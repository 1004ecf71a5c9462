package models

// PaymentNotification is the gateway's webhook body, reduced to the fields
// the settlement pipeline consumes. OrderID may carry a retry suffix the
// gateway appends after an underscore; GrossAmount stays the raw numeric
// string because it participates in the signature exactly as sent.
type PaymentNotification struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	StatusCode        string `json:"status_code" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
	TransactionID     string `json:"transaction_id"`
}
