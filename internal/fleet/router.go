package fleet

import (
	"flytau/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFleetRoutes(rg *gin.RouterGroup, controller *Controller) {
	planes := rg.Group("/manager/planes")
	planes.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		planes.POST("", controller.AddPlane)               // POST /api/v1/manager/planes
		planes.GET("", controller.ListPlanes)              // GET /api/v1/manager/planes
		planes.GET("/:id", controller.GetPlane)            // GET /api/v1/manager/planes/:id
		planes.POST("/:id/classes", controller.AddPlaneClass) // POST /api/v1/manager/planes/:id/classes
	}
}
