package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/middleware"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/services"
)

// TicketController handles buyer-facing ticket endpoints.
type TicketController struct {
	settlement *services.SettlementService
	logger     *zap.Logger
}

func NewTicketController(settlement *services.SettlementService, logger *zap.Logger) *TicketController {
	return &TicketController{settlement: settlement, logger: logger}
}

// IssueTickets handles POST /orders/:order_id/tickets, the manual issuance
// trigger for a paid order whose webhook-time issuance did not happen.
func (tc *TicketController) IssueTickets(c *gin.Context) {
	orderID, userID, ok := tc.orderAndUser(c)
	if !ok {
		return
	}

	issued, svcErr := tc.settlement.IssueTicketsManually(c.Request.Context(), orderID, userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(issued), "tickets": issued})
}

// ListTickets handles GET /orders/:order_id/tickets.
func (tc *TicketController) ListTickets(c *gin.Context) {
	orderID, userID, ok := tc.orderAndUser(c)
	if !ok {
		return
	}

	tickets, svcErr := tc.settlement.ListTickets(c.Request.Context(), orderID, userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(tickets), "tickets": tickets})
}

func (tc *TicketController) orderAndUser(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return uuid.Nil, uuid.Nil, false
	}
	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}
	return orderID, userID, true
}
