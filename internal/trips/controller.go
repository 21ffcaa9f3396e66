package trips

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"busexpress/internal/seatmap"
	"busexpress/internal/shared/utils/response"
)

type Controller interface {
	CreateTrip(c *gin.Context)
	GetTrip(c *gin.Context)
	UpdateTrip(c *gin.Context)
	DeleteTrip(c *gin.Context)
	GetAllTrips(c *gin.Context)
	GetSeatMap(c *gin.Context)
	ToggleSeat(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return
	}

	trip, err := ctrl.service.CreateTrip(userUUID, req)
	if err != nil {
		switch err {
		case ErrBusAlreadyBooked:
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		case ErrRouteNotFound, ErrBusUnavailable, ErrDepartureInPast:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create trip", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Trip created successfully", trip, nil)
}

func (ctrl *controller) GetTrip(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid trip ID", nil, err.Error())
		return
	}

	trip, err := ctrl.service.GetTripByID(tripID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrTripNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Trip retrieved successfully", trip, nil)
}

func (ctrl *controller) UpdateTrip(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid trip ID", nil, err.Error())
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	trip, err := ctrl.service.UpdateTrip(tripID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err == ErrTripNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Trip updated successfully", trip, nil)
}

func (ctrl *controller) DeleteTrip(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid trip ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteTrip(tripID); err != nil {
		switch err {
		case ErrTripNotFound:
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case ErrTripHasBookings:
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete trip", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Trip deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllTrips(c *gin.Context) {
	var query TripListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	trips, err := ctrl.service.GetAllTrips(query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Trips retrieved successfully", trips, nil)
}

func (ctrl *controller) GetSeatMap(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid trip ID", nil, err.Error())
		return
	}

	seatMap, err := ctrl.service.GetSeatMap(c.Request.Context(), tripID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrTripNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

func (ctrl *controller) ToggleSeat(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid trip ID", nil, err.Error())
		return
	}

	var req ToggleSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.ToggleSeat(c.Request.Context(), tripID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTripNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, seatmap.ErrSeatNotFound):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, seatmap.ErrSeatOccupied), errors.Is(err, seatmap.ErrPairUnavailable):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to toggle seat", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat toggled successfully", result, nil)
}
