package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/repository"
)

func TestCountByOrderID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormTicketRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByOrderID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestIssueBatch_LocksOrderRowAndCreatesUnderTheLock(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormTicketRepository(gormDB)

	orderID := uuid.New()
	ticketID := uuid.New()

	mock.ExpectBegin()
	// Concurrent batches for the same order must queue on the row lock.
	mock.ExpectQuery(`SELECT "id" FROM "orders".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(orderID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tickets"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(ticketID))
	mock.ExpectCommit()

	err := repo.IssueBatch(context.Background(), orderID, func(existing int64, create func(*models.Ticket) error) error {
		assert.Zero(t, existing, "count must reflect the locked state")
		return create(&models.Ticket{
			ID:          ticketID,
			OrderID:     orderID,
			OrderItemID: uuid.New(),
			Payload:     `{"type":"ticket"}`,
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueBatch_ExistingCountReachesCallbackBeforeAnyInsert(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormTicketRepository(gormDB)

	orderID := uuid.New()
	sentinel := errors.New("already issued")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "orders".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(orderID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := repo.IssueBatch(context.Background(), orderID, func(existing int64, _ func(*models.Ticket) error) error {
		if existing > 0 {
			return sentinel
		}
		return nil
	})
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueBatch_CreateFailureRollsBackTheBatch(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormTicketRepository(gormDB)

	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "orders".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(orderID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tickets"`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.IssueBatch(context.Background(), orderID, func(_ int64, create func(*models.Ticket) error) error {
		return create(&models.Ticket{ID: uuid.New(), OrderID: orderID, OrderItemID: uuid.New()})
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueBatch_UnknownOrderAborts(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormTicketRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "orders".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectRollback()

	called := false
	err := repo.IssueBatch(context.Background(), uuid.New(), func(int64, func(*models.Ticket) error) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.False(t, called, "callback must not run without the lock")
	assert.NoError(t, mock.ExpectationsWereMet())
}
