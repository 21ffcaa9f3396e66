package fleet

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"busexpress/internal/shared/utils/response"
)

type Controller interface {
	CreateBus(c *gin.Context)
	GetBus(c *gin.Context)
	UpdateBus(c *gin.Context)
	DeleteBus(c *gin.Context)
	GetAllBuses(c *gin.Context)
	GetActiveBuses(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateBus(c *gin.Context) {
	var req CreateBusRequest
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

	bus, err := ctrl.service.CreateBus(userUUID, req)
	if err != nil {
		switch err {
		case ErrRegistrationTaken:
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		case ErrInvalidSeatConfig:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create bus", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Bus created successfully", bus, nil)
}

func (ctrl *controller) GetBus(c *gin.Context) {
	busID, err := uuid.Parse(c.Param("busId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, err.Error())
		return
	}

	bus, err := ctrl.service.GetBusByID(busID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrBusNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus retrieved successfully", bus, nil)
}

func (ctrl *controller) UpdateBus(c *gin.Context) {
	busID, err := uuid.Parse(c.Param("busId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, err.Error())
		return
	}

	var req UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	bus, err := ctrl.service.UpdateBus(busID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err == ErrBusNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus updated successfully", bus, nil)
}

func (ctrl *controller) DeleteBus(c *gin.Context) {
	busID, err := uuid.Parse(c.Param("busId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteBus(busID); err != nil {
		statusCode := http.StatusBadRequest
		if err == ErrBusNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllBuses(c *gin.Context) {
	var query BusListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	buses, err := ctrl.service.GetAllBuses(query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Buses retrieved successfully", buses, nil)
}

func (ctrl *controller) GetActiveBuses(c *gin.Context) {
	buses, err := ctrl.service.GetActiveBuses()
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Active buses retrieved successfully", buses, nil)
}
