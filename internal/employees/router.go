package employees

import (
	"busexpress/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEmployeeRoutes(router *gin.RouterGroup, controller Controller) {
	// Staff rosters are admin/manager territory
	employees := router.Group("/admin/employees")
	employees.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "MANAGER"))
	{
		employees.POST("", controller.CreateEmployee)
		employees.GET("", controller.GetAllEmployees)
		employees.GET("/:employeeId", controller.GetEmployee)
		employees.PUT("/:employeeId", controller.UpdateEmployee)
		employees.DELETE("/:employeeId", controller.DeleteEmployee)
		employees.PUT("/:employeeId/bus", controller.AssignBus)
	}

	// Crew lookup is useful for any staff checking an assignment
	crew := router.Group("/buses/:busId/crew")
	crew.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		crew.GET("", controller.GetBusCrew)
	}
}
