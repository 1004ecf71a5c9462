package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
)

// PaymentRepository provides access to payment rows and the combined
// payment/order status transition applied on settlement.
type PaymentRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
	// ApplyStatus updates the payment's status, records the gateway's
	// transaction id when one is given, and, when orderStatus is non-nil,
	// moves the owning order within the same transaction, so a crash never
	// leaves the two inconsistent. The order write only hits rows still in
	// pending; paid and cancelled orders are never transitioned again.
	ApplyStatus(ctx context.Context, orderID uuid.UUID, transactionID *string, paymentStatus string, orderStatus *string) error
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) ApplyStatus(ctx context.Context, orderID uuid.UUID, transactionID *string, paymentStatus string, orderStatus *string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paymentUpdates := map[string]interface{}{
			"status":     paymentStatus,
			"updated_at": now,
		}
		if transactionID != nil && *transactionID != "" {
			paymentUpdates["transaction_id"] = *transactionID
		}
		if paymentStatus == models.PaymentStatusSettlement {
			paymentUpdates["settled_at"] = &now
		}
		if err := tx.Model(&models.Payment{}).
			Where("order_id = ?", orderID).
			Updates(paymentUpdates).Error; err != nil {
			return err
		}

		if orderStatus == nil {
			return nil
		}

		orderUpdates := map[string]interface{}{
			"status":     *orderStatus,
			"updated_at": now,
		}
		switch *orderStatus {
		case models.OrderStatusPaid:
			orderUpdates["paid_at"] = &now
		case models.OrderStatusCancelled:
			orderUpdates["canceled_at"] = &now
		}
		return tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
			Updates(orderUpdates).Error
	})
}
