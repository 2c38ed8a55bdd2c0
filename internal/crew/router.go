package crew

import (
	"flytau/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCrewRoutes(rg *gin.RouterGroup, controller *Controller) {
	manager := rg.Group("/manager")
	manager.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		manager.POST("/pilots", controller.AddPilot)           // POST /api/v1/manager/pilots
		manager.GET("/pilots", controller.ListPilots)          // GET /api/v1/manager/pilots
		manager.POST("/attendants", controller.AddAttendant)   // POST /api/v1/manager/attendants
		manager.GET("/attendants", controller.ListAttendants)  // GET /api/v1/manager/attendants
		manager.GET("/flights/:id/crew", controller.GetAssignments)
		manager.PUT("/flights/:id/crew", controller.AssignCrew)
	}
}
