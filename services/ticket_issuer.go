package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/providers"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/repository"
)

var (
	// ErrAlreadyIssued is returned when tickets for the order already exist.
	// The webhook path logs and moves on; the manual endpoint surfaces it as
	// a 400 to the caller.
	ErrAlreadyIssued = errors.New("tickets already issued for order")

	// ErrNoTicketItems is returned when none of the order's items are of the
	// ticket kind, before any persistence is attempted.
	ErrNoTicketItems = errors.New("order has no ticket items")

	// ErrRenderingFailed is returned when every unit of the batch failed to
	// render. Nothing was persisted, so the order stays eligible for a retry
	// once the rendering backend recovers.
	ErrRenderingFailed = errors.New("no ticket unit could be rendered")
)

// TicketIssuer produces one QR credential per purchased unit of every
// ticket-kind item in an order.
type TicketIssuer struct {
	tickets  repository.TicketRepository
	catalog  repository.CatalogRepository
	renderer providers.QRRenderer
	logger   *zap.Logger
}

func NewTicketIssuer(
	tickets repository.TicketRepository,
	catalog repository.CatalogRepository,
	renderer providers.QRRenderer,
	logger *zap.Logger,
) *TicketIssuer {
	return &TicketIssuer{
		tickets:  tickets,
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
	}
}

// Issue generates and persists credentials for every unit of the order's
// ticket-kind items. The whole batch runs under a lock on the order row so
// concurrent triggers serialize on the existence check; a batch is issued at
// most once per order. A rendering failure skips that unit and keeps going;
// the batch is never rolled back for a dead rendering backend. When no unit
// rendered at all the attempt reports ErrRenderingFailed so callers can tell
// a rendering outage apart from an order with nothing to issue, which
// reports ErrNoTicketItems.
//
// Returns the issued tickets with their product names resolved.
func (ti *TicketIssuer) Issue(ctx context.Context, order *models.Order) ([]IssuedTicket, error) {
	productIDs := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := ti.catalog.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	eligible := make([]models.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		if p, ok := products[item.ProductID]; ok && p.Kind == models.ProductKindTicket {
			eligible = append(eligible, item)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoTicketItems
	}

	var issued []IssuedTicket
	err = ti.tickets.IssueBatch(ctx, order.ID, func(existing int64, create func(*models.Ticket) error) error {
		if existing > 0 {
			return ErrAlreadyIssued
		}

		for _, item := range eligible {
			product := products[item.ProductID]
			for unit := 0; unit < item.Quantity; unit++ {
				ticket, renderErr := ti.buildUnit(ctx, order.ID, item, product)
				if renderErr != nil {
					// Rendering is best-effort per unit; units already
					// issued in this batch stand.
					ti.logger.Error("Ticket rendering failed, skipping unit",
						zap.String("order_id", order.ID.String()),
						zap.String("order_item_id", item.ID.String()),
						zap.Int("unit", unit),
						zap.Error(renderErr),
					)
					continue
				}
				if err := create(ticket); err != nil {
					return err
				}
				issued = append(issued, IssuedTicket{Ticket: ticket, ProductName: product.Name})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(issued) == 0 {
		return nil, ErrRenderingFailed
	}

	ti.logger.Info("Tickets issued",
		zap.String("order_id", order.ID.String()),
		zap.Int("count", len(issued)),
	)
	return issued, nil
}

func (ti *TicketIssuer) buildUnit(
	ctx context.Context,
	orderID uuid.UUID,
	item models.OrderItem,
	product models.Product,
) (*models.Ticket, error) {
	payload, err := json.Marshal(models.TicketPayload{
		Type:        models.TicketPayloadType,
		OrderID:     orderID.String(),
		OrderItemID: item.ID.String(),
		ProductName: product.Name,
		IssuedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	image, err := ti.renderer.Render(ctx, string(payload))
	if err != nil {
		return nil, err
	}

	return &models.Ticket{
		ID:          uuid.New(),
		OrderID:     orderID,
		OrderItemID: item.ID,
		Payload:     string(payload),
		QRImage:     base64.StdEncoding.EncodeToString(image),
		Used:        false,
	}, nil
}

// IssuedTicket pairs a persisted ticket with its product's display name.
type IssuedTicket struct {
	Ticket      *models.Ticket
	ProductName string
}
