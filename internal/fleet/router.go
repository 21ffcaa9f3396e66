package fleet

import (
	"busexpress/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFleetRoutes(router *gin.RouterGroup, controller Controller) {
	// Staff can browse the fleet
	buses := router.Group("/buses")
	buses.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		buses.GET("", controller.GetAllBuses)
		buses.GET("/active", controller.GetActiveBuses)
		buses.GET("/:busId", controller.GetBus)
	}

	// Fleet management is restricted to admins and managers
	adminBuses := router.Group("/admin/buses")
	adminBuses.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "MANAGER"))
	{
		adminBuses.POST("", controller.CreateBus)
		adminBuses.PUT("/:busId", controller.UpdateBus)
		adminBuses.DELETE("/:busId", controller.DeleteBus)
	}
}
