package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
)

// OrderRepository is a read-only view of orders for the settlement pipeline.
// Order mutation happens only through PaymentRepository.ApplyStatus.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// FindEligibleByStore returns revenue-eligible orders (paid, shipped or
	// completed) containing at least one item sold by the given store, items
	// preloaded.
	FindEligibleByStore(ctx context.Context, storeID uuid.UUID) ([]models.Order, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

var revenueEligibleStatuses = []string{
	models.OrderStatusPaid,
	models.OrderStatusShipped,
	models.OrderStatusCompleted,
}

func (r *GormOrderRepository) FindEligibleByStore(ctx context.Context, storeID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status IN ?", revenueEligibleStatuses).
		Where("id IN (?)", r.db.Model(&models.OrderItem{}).
			Select("order_id").
			Where("store_id = ?", storeID)).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
