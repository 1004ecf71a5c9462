package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
)

// TicketRepository persists issued ticket credentials. Rows are insert-only
// here; redemption owns the used flag.
type TicketRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Ticket, error)
	CountByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error)
	// IssueBatch runs fn inside a transaction holding a FOR UPDATE lock on
	// the order row, so concurrent issuance attempts for the same order
	// serialize on the existence check. fn receives the count of tickets
	// already present under the lock and a create function persisting one
	// ticket within the transaction. Returning an error from fn rolls the
	// whole batch back.
	IssueBatch(ctx context.Context, orderID uuid.UUID, fn func(existing int64, create func(*models.Ticket) error) error) error
}

type GormTicketRepository struct {
	db *gorm.DB
}

func NewGormTicketRepository(db *gorm.DB) TicketRepository {
	return &GormTicketRepository{db: db}
}

func (r *GormTicketRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *GormTicketRepository) CountByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

func (r *GormTicketRepository) IssueBatch(ctx context.Context, orderID uuid.UUID, fn func(existing int64, create func(*models.Ticket) error) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Ticket{}).
			Where("order_id = ?", orderID).
			Count(&existing).Error; err != nil {
			return err
		}

		return fn(existing, func(t *models.Ticket) error {
			return tx.Create(t).Error
		})
	})
}
