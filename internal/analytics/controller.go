package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"busexpress/internal/shared/utils/response"
)

type Controller interface {
	GetOverview(c *gin.Context)
	GetDailyStats(c *gin.Context)
	GetBusProfitability(c *gin.Context)
	GetOccupancyReport(c *gin.Context)
	GetAgentLeaderboard(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetOverview(c *gin.Context) {
	overview, err := ctrl.service.GetOverview(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to compute overview", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Overview retrieved successfully", overview, nil)
}

func (ctrl *controller) GetDailyStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := ctrl.service.GetDailyStats(c.Request.Context(), days)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to compute daily stats", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Daily stats retrieved successfully", stats, nil)
}

func (ctrl *controller) GetBusProfitability(c *gin.Context) {
	rows, err := ctrl.service.GetBusProfitability(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to compute bus profitability", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus profitability retrieved successfully", rows, nil)
}

func (ctrl *controller) GetOccupancyReport(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	report, err := ctrl.service.GetOccupancyReport(c.Request.Context(), limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to compute occupancy report", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Occupancy report retrieved successfully", report, nil)
}

func (ctrl *controller) GetAgentLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := ctrl.service.GetAgentLeaderboard(c.Request.Context(), limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to compute agent leaderboard", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Agent leaderboard retrieved successfully", rows, nil)
}
