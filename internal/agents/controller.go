package agents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"busexpress/internal/shared/utils/response"
)

type Controller interface {
	CreateAgent(c *gin.Context)
	GetAgent(c *gin.Context)
	UpdateAgent(c *gin.Context)
	GetAllAgents(c *gin.Context)
	GetCommissionSummary(c *gin.Context)
	GetMyProfile(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateAgent(c *gin.Context) {
	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	agent, err := ctrl.service.CreateAgent(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrProfileExists):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create agent", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Agent created successfully", agent, nil)
}

func (ctrl *controller) GetAgent(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("agentId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid agent ID", nil, err.Error())
		return
	}

	agent, err := ctrl.service.GetAgentByID(c.Request.Context(), agentID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrAgentNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Agent retrieved successfully", agent, nil)
}

func (ctrl *controller) UpdateAgent(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("agentId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid agent ID", nil, err.Error())
		return
	}

	var req UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	agent, err := ctrl.service.UpdateAgent(c.Request.Context(), agentID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrAgentNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Agent updated successfully", agent, nil)
}

func (ctrl *controller) GetAllAgents(c *gin.Context) {
	agents, err := ctrl.service.GetAllAgents(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve agents", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Agents retrieved successfully", agents, nil)
}

func (ctrl *controller) GetCommissionSummary(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("agentId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid agent ID", nil, err.Error())
		return
	}

	var query CommissionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	summary, err := ctrl.service.GetCommissionSummary(c.Request.Context(), agentID, query)
	if err != nil {
		switch {
		case errors.Is(err, ErrAgentNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrInvalidDateRange):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to compute commission", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Commission summary retrieved successfully", summary, nil)
}

// GetMyProfile returns the agent profile bound to the authenticated account.
func (ctrl *controller) GetMyProfile(c *gin.Context) {
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

	agent, err := ctrl.service.GetAgentByUserID(c.Request.Context(), userUUID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrAgentNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Agent profile retrieved successfully", agent, nil)
}
