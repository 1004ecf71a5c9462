package services

import "github.com/fadilsflow/tegaltourism-marketplace-sub001/models"

// StatusTransition is the internal pair a gateway transaction status maps
// to. A nil OrderStatus means the order is left untouched.
type StatusTransition struct {
	PaymentStatus string
	OrderStatus   *string
}

var (
	orderPaid      = models.OrderStatusPaid
	orderCancelled = models.OrderStatusCancelled
)

// MapTransactionStatus translates the gateway's transaction-status vocabulary
// into the internal {payment status, order status} pair. Order status changes
// only on terminal outcomes; transient and unknown statuses update the
// payment record alone, so a status the gateway introduces later degrades to
// a recorded raw value instead of corrupting the order lifecycle.
func MapTransactionStatus(transactionStatus string) StatusTransition {
	switch transactionStatus {
	case "capture", "settlement":
		return StatusTransition{PaymentStatus: models.PaymentStatusSettlement, OrderStatus: &orderPaid}
	case "pending":
		return StatusTransition{PaymentStatus: models.PaymentStatusPending}
	case "deny":
		return StatusTransition{PaymentStatus: models.PaymentStatusDeny, OrderStatus: &orderCancelled}
	case "cancel", "expire":
		return StatusTransition{PaymentStatus: transactionStatus, OrderStatus: &orderCancelled}
	default:
		return StatusTransition{PaymentStatus: transactionStatus}
	}
}
