package bookings

import (
	"busexpress/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// All staff roles sell and manage tickets
	bookings := router.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		bookings.POST("/hold", controller.HoldSeats)
		bookings.POST("/confirm", controller.ConfirmBooking)
		bookings.GET("", controller.GetAllBookings)
		bookings.GET("/:bookingRef", controller.GetBooking)
		bookings.POST("/:bookingRef/cancel", controller.CancelBooking)
		bookings.GET("/:bookingRef/ticket", controller.DownloadTicket)
	}
}
