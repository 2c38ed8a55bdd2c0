package orders

import (
	"flytau/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(rg *gin.RouterGroup, controller *Controller) {
	orders := rg.Group("/orders")
	{
		// Booking works with or without a token; guests identify in the body
		orders.POST("", middleware.OptionalAuth(), controller.CreateOrder)

		// Guest access by (order id, email)
		orders.POST("/:id/guest", controller.GetGuestOrder)
		orders.POST("/:id/guest/cancel", controller.CancelGuestOrder)
	}

	authed := rg.Group("/orders")
	authed.Use(middleware.JWTAuth(), middleware.RequireCustomer())
	{
		authed.GET("", controller.ListActiveOrders)          // GET /api/v1/orders
		authed.GET("/history", controller.History)           // GET /api/v1/orders/history?status=
		authed.GET("/:id", controller.GetOrder)              // GET /api/v1/orders/:id
		authed.POST("/:id/cancel", controller.CancelOrder)   // POST /api/v1/orders/:id/cancel
	}
}
