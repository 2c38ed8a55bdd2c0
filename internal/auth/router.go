package auth

import (
	"flytau/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)          // POST /api/v1/auth/register
		authGroup.POST("/login", controller.Login)                // POST /api/v1/auth/login
		authGroup.POST("/manager/login", controller.ManagerLogin) // POST /api/v1/auth/manager/login
		authGroup.POST("/refresh", controller.RefreshToken)       // POST /api/v1/auth/refresh

		authGroup.GET("/me", middleware.JWTAuth(), middleware.RequireCustomer(), controller.Profile)
	}
}
