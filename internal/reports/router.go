package reports

import (
	"flytau/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(rg *gin.RouterGroup, controller *Controller) {
	reportsGroup := rg.Group("/manager/reports")
	reportsGroup.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		reportsGroup.GET("/occupancy", controller.GetOccupancyReport) // GET /api/v1/manager/reports/occupancy
		reportsGroup.GET("/revenue", controller.GetRouteRevenues)     // GET /api/v1/manager/reports/revenue
		reportsGroup.GET("/staff-hours", controller.GetStaffHours)    // GET /api/v1/manager/reports/staff-hours
	}
}
