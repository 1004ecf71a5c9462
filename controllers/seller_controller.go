package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/middleware"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/services"
)

// SellerController handles seller-facing revenue reporting endpoints.
type SellerController struct {
	seller *services.SellerService
	logger *zap.Logger
}

func NewSellerController(seller *services.SellerService, logger *zap.Logger) *SellerController {
	return &SellerController{seller: seller, logger: logger}
}

// OrderRevenue handles GET /seller/orders/:order_id/revenue.
func (sc *SellerController) OrderRevenue(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	revenue, svcErr := sc.seller.OrderRevenue(c.Request.Context(), orderID, userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	c.JSON(http.StatusOK, revenue)
}

// Dashboard handles GET /seller/dashboard.
func (sc *SellerController) Dashboard(c *gin.Context) {
	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, svcErr := sc.seller.DashboardStats(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}

	c.JSON(http.StatusOK, stats)
}
