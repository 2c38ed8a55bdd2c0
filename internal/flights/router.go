package flights

import (
	"flytau/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFlightRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public browsing routes
	public := rg.Group("/flights")
	{
		public.GET("", controller.SearchFlights)                    // GET /api/v1/flights
		public.GET("/board", controller.GetFlightBoard)             // GET /api/v1/flights/board
		public.GET("/:id/availability", controller.GetSeatAvailability) // GET /api/v1/flights/:id/availability
	}
	rg.GET("/airports", controller.ListAirports) // GET /api/v1/airports

	// Manager flight management
	manager := rg.Group("/manager")
	manager.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		manager.POST("/flight-lines", controller.AddFlightLine) // POST /api/v1/manager/flight-lines
		manager.GET("/flight-lines", controller.ListFlightLines)
		manager.POST("/flights", controller.CreateFlight)       // POST /api/v1/manager/flights
		manager.GET("/flights", controller.ListFlights)         // GET /api/v1/manager/flights?status=
		manager.PATCH("/flights/:id/prices", controller.UpdatePrices)
		manager.PATCH("/flights/:id/status", controller.UpdateStatus)
		manager.POST("/flights/:id/cancel", controller.CancelFlight)
	}
}
