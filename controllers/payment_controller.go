package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/models"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/services"
)

// PaymentController handles the gateway's webhook notifications.
type PaymentController struct {
	settlement *services.SettlementService
	logger     *zap.Logger
}

func NewPaymentController(settlement *services.SettlementService, logger *zap.Logger) *PaymentController {
	return &PaymentController{settlement: settlement, logger: logger}
}

// GatewayNotification handles POST /payments/notification. Authentication is
// the notification's own signature; there is no session on this route.
func (pc *PaymentController) GatewayNotification(c *gin.Context) {
	var n models.PaymentNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification body", "details": err.Error()})
		return
	}

	pc.logger.Info("Gateway notification received",
		zap.String("order_ref", n.OrderID),
		zap.String("transaction_status", n.TransactionStatus),
	)

	result, svcErr := pc.settlement.Settle(c.Request.Context(), &n)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	c.JSON(http.StatusOK, result)
}
