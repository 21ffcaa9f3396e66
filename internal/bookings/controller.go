package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"busexpress/internal/seatmap"
	"busexpress/internal/shared/utils/response"
	"busexpress/internal/trips"
)

type Controller interface {
	HoldSeats(c *gin.Context)
	ConfirmBooking(c *gin.Context)
	GetBooking(c *gin.Context)
	GetAllBookings(c *gin.Context)
	CancelBooking(c *gin.Context)
	DownloadTicket(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func agentFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	agentID, err := uuid.Parse(userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}
	return agentID, true
}

func (ctrl *controller) HoldSeats(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	var req HoldSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	hold, err := ctrl.service.HoldSeats(c.Request.Context(), agentID, req)
	if err != nil {
		ctrl.respondBookingError(c, err, "Failed to hold seats")
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Seats held successfully", hold, nil)
}

func (ctrl *controller) ConfirmBooking(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	var req ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.ConfirmBooking(c.Request.Context(), agentID, req)
	if err != nil {
		ctrl.respondBookingError(c, err, "Failed to confirm booking")
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking confirmed successfully", booking, nil)
}

func (ctrl *controller) GetBooking(c *gin.Context) {
	bookingRef := c.Param("bookingRef")
	if bookingRef == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	booking, err := ctrl.service.GetBookingByRef(c.Request.Context(), bookingRef)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrBookingNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (ctrl *controller) GetAllBookings(c *gin.Context) {
	var query BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	bookings, err := ctrl.service.GetAllBookings(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve bookings", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (ctrl *controller) CancelBooking(c *gin.Context) {
	bookingRef := c.Param("bookingRef")
	if bookingRef == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	booking, err := ctrl.service.CancelBooking(c.Request.Context(), bookingRef)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrDepartedTrip):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to cancel booking", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

func (ctrl *controller) DownloadTicket(c *gin.Context) {
	bookingRef := c.Param("bookingRef")
	if bookingRef == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	pdfBytes, filename, err := ctrl.service.GenerateTicket(c.Request.Context(), bookingRef)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrAlreadyCancelled):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to generate ticket", nil, nil)
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// respondBookingError maps the booking flow's error set onto HTTP statuses.
func (ctrl *controller) respondBookingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, trips.ErrTripNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, seatmap.ErrSeatNotFound):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, seatmap.ErrSeatOccupied),
		errors.Is(err, seatmap.ErrPairUnavailable),
		errors.Is(err, ErrSeatAlreadyHeld),
		errors.Is(err, ErrTripFull),
		errors.Is(err, ErrTripNotOpen):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrTooManySeats),
		errors.Is(err, ErrSelectionRejected),
		errors.Is(err, ErrHoldNotFound),
		errors.Is(err, ErrHoldMismatch),
		errors.Is(err, seatmap.ErrEmptySelection),
		errors.Is(err, seatmap.ErrMissingCustomerDetails):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
