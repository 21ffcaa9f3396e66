package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"busexpress/internal/shared/utils/response"
)

type Controller interface {
	CreateRoute(c *gin.Context)
	GetRoute(c *gin.Context)
	UpdateRoute(c *gin.Context)
	DeleteRoute(c *gin.Context)
	GetAllRoutes(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
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

	route, err := ctrl.service.CreateRoute(userUUID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Route created successfully", route, nil)
}

func (ctrl *controller) GetRoute(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("routeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid route ID", nil, err.Error())
		return
	}

	route, err := ctrl.service.GetRouteByID(routeID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRouteNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Route retrieved successfully", route, nil)
}

func (ctrl *controller) UpdateRoute(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("routeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid route ID", nil, err.Error())
		return
	}

	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	route, err := ctrl.service.UpdateRoute(routeID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err == ErrRouteNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Route updated successfully", route, nil)
}

func (ctrl *controller) DeleteRoute(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("routeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid route ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteRoute(routeID); err != nil {
		statusCode := http.StatusBadRequest
		if err == ErrRouteNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Route deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllRoutes(c *gin.Context) {
	var query RouteListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	routes, err := ctrl.service.GetAllRoutes(query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Routes retrieved successfully", routes, nil)
}
