package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/controllers"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/middleware"
)

// Register wires up all routes of the settlement service.
func Register(
	r *gin.Engine,
	pc *controllers.PaymentController,
	tc *controllers.TicketController,
	sc *controllers.SellerController,
	jwtSecret string,
) {
	// Gateway webhook: no session, authenticated by its signature.
	r.POST("/payments/notification", pc.GatewayNotification)

	auth := middleware.AuthMiddleware(jwtSecret)

	orders := r.Group("/orders", auth)
	orders.POST("/:order_id/tickets", tc.IssueTickets)
	orders.GET("/:order_id/tickets", tc.ListTickets)

	seller := r.Group("/seller", auth)
	seller.GET("/orders/:order_id/revenue", sc.OrderRevenue)
	seller.GET("/dashboard", sc.Dashboard)
}
