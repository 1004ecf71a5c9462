package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	awspkg "github.com/fadilsflow/tegaltourism-marketplace-sub001/pkg/aws"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/repository"
)

// orderRefDelimiter separates the original order id from the retry suffix
// the gateway appends when it re-sends a notification.
const orderRefDelimiter = "_"

// terminalPaymentStatuses are the states after which the gateway's word is
// final for this payment. Notifications arriving once the payment is in one
// of these states are acknowledged and dropped, so an out-of-order expire
// can never cancel a paid order and a late settlement can never revive a
// cancelled one.
var terminalPaymentStatuses = map[string]bool{
	models.PaymentStatusSettlement: true,
	models.PaymentStatusDeny:       true,
	models.PaymentStatusCancel:     true,
	models.PaymentStatusExpire:     true,
}

// SettlementResult is the webhook's success response body.
type SettlementResult struct {
	PaymentStatus string  `json:"payment_status"`
	OrderStatus   *string `json:"order_status,omitempty"`
}

// TicketSummary is the minimal per-credential view returned by the manual
// issuance endpoint and the buyer ticket listing.
type TicketSummary struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Used        bool      `json:"used"`
	IssuedAt    time.Time `json:"issued_at"`
}

// SettlementService drives the order/payment state transition and ticket
// issuance for gateway notifications and the authenticated manual trigger.
// The gateway server key is injected at construction; a missing key fails
// every settlement with a configuration error rather than silently accepting
// unsigned notifications.
type SettlementService struct {
	payments  repository.PaymentRepository
	orders    repository.OrderRepository
	tickets   repository.TicketRepository
	issuer    *TicketIssuer
	events    awspkg.SNSPublisher
	topicArn  string
	serverKey string
	logger    *zap.Logger
}

func NewSettlementService(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	tickets repository.TicketRepository,
	issuer *TicketIssuer,
	events awspkg.SNSPublisher,
	topicArn string,
	serverKey string,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		payments:  payments,
		orders:    orders,
		tickets:   tickets,
		issuer:    issuer,
		events:    events,
		topicArn:  topicArn,
		serverKey: serverKey,
		logger:    logger,
	}
}

// resolveOrderRef strips the gateway's retry suffix from an order reference
// and parses the remainder as the order id.
func resolveOrderRef(orderRef string) (uuid.UUID, error) {
	original, _, _ := strings.Cut(orderRef, orderRefDelimiter)
	return uuid.Parse(original)
}

// Settle authenticates a gateway notification, applies the mapped status
// transition to the payment and order in one transaction, and issues tickets
// when the order enters paid. Issuance failures are logged, never surfaced:
// once payment truth is durable a rendering outage must not fail the webhook.
func (s *SettlementService) Settle(ctx context.Context, n *models.PaymentNotification) (*SettlementResult, *ServiceError) {
	if s.serverKey == "" {
		s.logger.Error("Gateway server key is not configured")
		return nil, errConfiguration("Payment gateway is not configured")
	}

	if !VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, s.serverKey, n.SignatureKey) {
		s.logger.Warn("Rejected notification with invalid signature",
			zap.String("order_ref", n.OrderID),
			zap.String("transaction_status", n.TransactionStatus),
		)
		return nil, errBadSignature()
	}

	orderID, err := resolveOrderRef(n.OrderID)
	if err != nil {
		s.logger.Warn("Notification order reference is not a valid order id",
			zap.String("order_ref", n.OrderID),
		)
		return nil, errNotFound("Payment not found")
	}

	payment, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("No payment for notified order",
				zap.String("order_id", orderID.String()),
				zap.String("order_ref", n.OrderID),
			)
			return nil, errNotFound("Payment not found")
		}
		s.logger.Error("Payment lookup failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, errInternal("Failed to process notification")
	}

	if terminalPaymentStatuses[payment.Status] {
		s.logger.Info("Ignoring notification for settled payment",
			zap.String("order_id", orderID.String()),
			zap.String("payment_status", payment.Status),
			zap.String("transaction_status", n.TransactionStatus),
		)
		return &SettlementResult{PaymentStatus: payment.Status}, nil
	}

	var transactionID *string
	if n.TransactionID != "" {
		transactionID = &n.TransactionID
	}

	transition := MapTransactionStatus(n.TransactionStatus)
	if err := s.payments.ApplyStatus(ctx, orderID, transactionID, transition.PaymentStatus, transition.OrderStatus); err != nil {
		s.logger.Error("Failed to apply settlement status",
			zap.String("order_id", orderID.String()),
			zap.String("payment_status", transition.PaymentStatus),
			zap.Error(err),
		)
		return nil, errInternal("Failed to update payment status")
	}

	s.logger.Info("Notification processed",
		zap.String("order_id", orderID.String()),
		zap.String("transaction_status", n.TransactionStatus),
		zap.String("payment_status", transition.PaymentStatus),
	)

	if transition.OrderStatus != nil && *transition.OrderStatus == models.OrderStatusPaid {
		s.fulfillPaidOrder(ctx, orderID, payment)
	}

	return &SettlementResult{
		PaymentStatus: transition.PaymentStatus,
		OrderStatus:   transition.OrderStatus,
	}, nil
}

// fulfillPaidOrder issues tickets and emits the order_paid event. Both are
// best-effort: the status transition has already committed.
func (s *SettlementService) fulfillPaidOrder(ctx context.Context, orderID uuid.UUID, payment *models.Payment) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to load paid order for fulfillment",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return
	}

	issued, err := s.issuer.Issue(ctx, order)
	switch {
	case errors.Is(err, ErrAlreadyIssued):
		s.logger.Info("Skipping ticket issuance on duplicate notification",
			zap.String("order_id", orderID.String()),
		)
		return
	case errors.Is(err, ErrNoTicketItems):
		// Goods-only orders still announce the paid transition.
	case err != nil:
		s.logger.Error("Ticket issuance failed after settlement",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return
	}

	s.publishOrderPaid(ctx, order, payment, len(issued))
}

func (s *SettlementService) publishOrderPaid(ctx context.Context, order *models.Order, payment *models.Payment, ticketCount int) {
	if s.events == nil || s.topicArn == "" {
		return
	}
	payload, _ := json.Marshal(models.OrderPaidEvent{
		Type:          "order_paid",
		OrderID:       order.ID.String(),
		UserID:        order.UserID.String(),
		PaymentID:     payment.ID.String(),
		GrossAmount:   payment.GrossAmount,
		TicketsIssued: ticketCount,
		Timestamp:     time.Now().UTC(),
	})
	if err := s.events.Publish(ctx, s.topicArn, payload); err != nil {
		s.logger.Error("Failed to publish order_paid event",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("order_paid event published", zap.String("order_id", order.ID.String()))
}

// IssueTicketsManually re-runs ticket issuance for a paid order on behalf of
// its buyer. Unlike the webhook path, every guard failure is surfaced to the
// caller.
func (s *SettlementService) IssueTicketsManually(ctx context.Context, orderID, userID uuid.UUID) ([]TicketSummary, *ServiceError) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Order not found")
		}
		s.logger.Error("Order lookup failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, errInternal("Failed to load order")
	}

	if order.UserID != userID {
		return nil, errForbidden("Order belongs to another user")
	}

	if order.Status != models.OrderStatusPaid {
		return nil, errOrderNotPaid()
	}

	issued, err := s.issuer.Issue(ctx, order)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyIssued):
			return nil, errAlreadyIssued()
		case errors.Is(err, ErrNoTicketItems):
			return nil, errNotFound("Order has no ticket items")
		case errors.Is(err, ErrRenderingFailed):
			s.logger.Error("Ticket rendering unavailable for manual issuance",
				zap.String("order_id", orderID.String()),
			)
			return nil, errRendering()
		}
		s.logger.Error("Manual ticket issuance failed",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return nil, errInternal("Failed to issue tickets")
	}

	summaries := make([]TicketSummary, 0, len(issued))
	for _, t := range issued {
		summaries = append(summaries, TicketSummary{
			ID:          t.Ticket.ID,
			ProductName: t.ProductName,
			Quantity:    1,
			Used:        t.Ticket.Used,
			IssuedAt:    t.Ticket.CreatedAt,
		})
	}
	return summaries, nil
}

// ListTickets returns the buyer's view of an order's issued credentials.
func (s *SettlementService) ListTickets(ctx context.Context, orderID, userID uuid.UUID) ([]TicketSummary, *ServiceError) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Order not found")
		}
		s.logger.Error("Order lookup failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, errInternal("Failed to load order")
	}
	if order.UserID != userID {
		return nil, errForbidden("Order belongs to another user")
	}

	tickets, err := s.tickets.FindByOrderID(ctx, orderID)
	if err != nil {
		s.logger.Error("Ticket lookup failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, errInternal("Failed to load tickets")
	}

	summaries := make([]TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		var payload models.TicketPayload
		_ = json.Unmarshal([]byte(t.Payload), &payload)
		summaries = append(summaries, TicketSummary{
			ID:          t.ID,
			ProductName: payload.ProductName,
			Quantity:    1,
			Used:        t.Used,
			IssuedAt:    t.CreatedAt,
		})
	}
	return summaries, nil
}
