package agents

import (
	"busexpress/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAgentRoutes(router *gin.RouterGroup, controller Controller) {
	// An agent can always see their own profile and standing
	me := router.Group("/agents/me")
	me.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		me.GET("", controller.GetMyProfile)
	}

	// Profile management and payouts are admin/manager territory
	adminAgents := router.Group("/admin/agents")
	adminAgents.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "MANAGER"))
	{
		adminAgents.POST("", controller.CreateAgent)
		adminAgents.GET("", controller.GetAllAgents)
		adminAgents.GET("/:agentId", controller.GetAgent)
		adminAgents.PUT("/:agentId", controller.UpdateAgent)
		adminAgents.GET("/:agentId/commission", controller.GetCommissionSummary)
	}
}
