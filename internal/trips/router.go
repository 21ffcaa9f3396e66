package trips

import (
	"busexpress/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTripRoutes(router *gin.RouterGroup, controller Controller) {
	// All staff can browse trips and seat maps when selling tickets
	trips := router.Group("/trips")
	trips.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		trips.GET("", controller.GetAllTrips)
		trips.GET("/:tripId", controller.GetTrip)
		trips.GET("/:tripId/seatmap", controller.GetSeatMap)
		trips.POST("/:tripId/seats/toggle", controller.ToggleSeat)
	}

	// Scheduling is restricted to admins and managers
	adminTrips := router.Group("/admin/trips")
	adminTrips.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN", "MANAGER"))
	{
		adminTrips.POST("", controller.CreateTrip)
		adminTrips.PUT("/:tripId", controller.UpdateTrip)
		adminTrips.DELETE("/:tripId", controller.DeleteTrip)
	}
}
