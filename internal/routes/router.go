package routes

import (
	"busexpress/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRouteRoutes(router *gin.RouterGroup, controller Controller) {
	routes := router.Group("/routes")
	routes.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		routes.GET("", controller.GetAllRoutes)
		routes.GET("/:routeId", controller.GetRoute)
	}

	adminRoutes := router.Group("/admin/routes")
	adminRoutes.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "MANAGER"))
	{
		adminRoutes.POST("", controller.CreateRoute)
		adminRoutes.PUT("/:routeId", controller.UpdateRoute)
		adminRoutes.DELETE("/:routeId", controller.DeleteRoute)
	}
}
