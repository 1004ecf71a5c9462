package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/controllers"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/services"
)

const serverKey = "test-server-key"

// ---- minimal mocks ----

type stubPaymentRepo struct {
	payment *models.Payment
}

func (s *stubPaymentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*models.Payment, error) {
	if s.payment == nil || s.payment.OrderID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.payment, nil
}

func (s *stubPaymentRepo) ApplyStatus(_ context.Context, _ uuid.UUID, transactionID *string, status string, _ *string) error {
	s.payment.Status = status
	if transactionID != nil {
		s.payment.TransactionID = transactionID
	}
	return nil
}

type stubOrderRepo struct {
	order *models.Order
}

func (s *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) FindEligibleByStore(_ context.Context, _ uuid.UUID) ([]models.Order, error) {
	return nil, nil
}

type stubTicketRepo struct {
	created int
}

func (s *stubTicketRepo) FindByOrderID(_ context.Context, _ uuid.UUID) ([]models.Ticket, error) {
	return nil, nil
}

func (s *stubTicketRepo) CountByOrderID(_ context.Context, _ uuid.UUID) (int64, error) {
	return int64(s.created), nil
}

func (s *stubTicketRepo) IssueBatch(_ context.Context, _ uuid.UUID, fn func(int64, func(*models.Ticket) error) error) error {
	return fn(int64(s.created), func(*models.Ticket) error {
		s.created++
		return nil
	})
}

type stubCatalogRepo struct {
	products map[uuid.UUID]models.Product
}

func (s *stubCatalogRepo) FindProductsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	out := map[uuid.UUID]models.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) FindStoreByUserID(_ context.Context, _ uuid.UUID) (*models.Store, error) {
	return nil, gorm.ErrRecordNotFound
}

type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, _ string) ([]byte, error) {
	return []byte("png"), nil
}

// ---- fixture ----

func newWebhookRouter(t *testing.T) (*gin.Engine, *stubPaymentRepo, *stubTicketRepo, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orderID := uuid.New()
	productID := uuid.New()
	order := &models.Order{
		ID:     orderID,
		UserID: uuid.New(),
		Total:  50000,
		Status: models.OrderStatusPending,
		Items: []models.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: productID, StoreID: uuid.New(), Price: 25000, Quantity: 2},
		},
	}

	payments := &stubPaymentRepo{payment: &models.Payment{ID: uuid.New(), OrderID: orderID, GrossAmount: 50000, Status: models.PaymentStatusPending}}
	orders := &stubOrderRepo{order: order}
	tickets := &stubTicketRepo{}
	catalog := &stubCatalogRepo{products: map[uuid.UUID]models.Product{
		productID: {ID: productID, Name: "Beach Entry", Kind: models.ProductKindTicket},
	}}

	logger, _ := zap.NewDevelopment()
	issuer := services.NewTicketIssuer(tickets, catalog, stubRenderer{}, logger)
	settlement := services.NewSettlementService(payments, orders, tickets, issuer, nil, "", serverKey, logger)
	pc := controllers.NewPaymentController(settlement, logger)

	r := gin.New()
	r.POST("/payments/notification", pc.GatewayNotification)
	return r, payments, tickets, orderID
}

func postNotification(r *gin.Engine, n models.PaymentNotification) *httptest.ResponseRecorder {
	body, _ := json.Marshal(n)
	req := httptest.NewRequest(http.MethodPost, "/payments/notification", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestGatewayNotification_Settlement(t *testing.T) {
	r, payments, tickets, orderID := newWebhookRouter(t)

	n := models.PaymentNotification{
		OrderID:           orderID.String(),
		TransactionStatus: "settlement",
		GrossAmount:       "50000.00",
		StatusCode:        "200",
	}
	n.SignatureKey = services.ComputeSignature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)

	w := postNotification(r, n)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "settlement", resp["payment_status"])
	assert.Equal(t, "paid", resp["order_status"])
	assert.Equal(t, models.PaymentStatusSettlement, payments.payment.Status)
	assert.Equal(t, 2, tickets.created)
}

func TestGatewayNotification_BadSignatureIs401(t *testing.T) {
	r, payments, tickets, orderID := newWebhookRouter(t)

	n := models.PaymentNotification{
		OrderID:           orderID.String(),
		TransactionStatus: "settlement",
		GrossAmount:       "50000.00",
		StatusCode:        "200",
		SignatureKey:      "deadbeef",
	}

	w := postNotification(r, n)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, models.PaymentStatusPending, payments.payment.Status)
	assert.Zero(t, tickets.created)
}

func TestGatewayNotification_UnknownOrderIs404(t *testing.T) {
	r, _, _, _ := newWebhookRouter(t)

	n := models.PaymentNotification{
		OrderID:           uuid.New().String(),
		TransactionStatus: "settlement",
		GrossAmount:       "50000.00",
		StatusCode:        "200",
	}
	n.SignatureKey = services.ComputeSignature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)

	w := postNotification(r, n)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGatewayNotification_MissingFieldsIs400(t *testing.T) {
	r, _, _, _ := newWebhookRouter(t)

	w := postNotification(r, models.PaymentNotification{OrderID: "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
