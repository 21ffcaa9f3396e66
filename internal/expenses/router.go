package expenses

import (
	"busexpress/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupExpenseRoutes(router *gin.RouterGroup, controller Controller) {
	// Operating costs are admin/manager territory
	expenses := router.Group("/admin/expenses")
	expenses.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "MANAGER"))
	{
		expenses.POST("", controller.CreateExpense)
		expenses.GET("", controller.GetAllExpenses)
		expenses.GET("/summary", controller.GetSummary)
		expenses.GET("/:expenseId", controller.GetExpense)
		expenses.PUT("/:expenseId", controller.UpdateExpense)
		expenses.DELETE("/:expenseId", controller.DeleteExpense)
	}
}
