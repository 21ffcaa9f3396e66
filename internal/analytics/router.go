package analytics

import (
	"busexpress/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller) {
	// Dashboards are admin/manager territory
	analytics := router.Group("/admin/analytics")
	analytics.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "MANAGER"))
	{
		analytics.GET("/overview", controller.GetOverview)
		analytics.GET("/daily", controller.GetDailyStats)
		analytics.GET("/buses/profitability", controller.GetBusProfitability)
		analytics.GET("/occupancy", controller.GetOccupancyReport)
		analytics.GET("/agents/leaderboard", controller.GetAgentLeaderboard)
	}
}
