package expenses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"busexpress/internal/shared/utils/response"
)

type Controller interface {
	CreateExpense(c *gin.Context)
	GetExpense(c *gin.Context)
	UpdateExpense(c *gin.Context)
	DeleteExpense(c *gin.Context)
	GetAllExpenses(c *gin.Context)
	GetSummary(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateExpense(c *gin.Context) {
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

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	expense, err := ctrl.service.CreateExpense(userUUID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBusNotFound), errors.Is(err, ErrInvalidDate):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create expense", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Expense created successfully", expense, nil)
}

func (ctrl *controller) GetExpense(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("expenseId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid expense ID", nil, err.Error())
		return
	}

	expense, err := ctrl.service.GetExpenseByID(expenseID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrExpenseNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Expense retrieved successfully", expense, nil)
}

func (ctrl *controller) UpdateExpense(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("expenseId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid expense ID", nil, err.Error())
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	expense, err := ctrl.service.UpdateExpense(expenseID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrExpenseNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrInvalidDate):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update expense", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Expense updated successfully", expense, nil)
}

func (ctrl *controller) DeleteExpense(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("expenseId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid expense ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteExpense(expenseID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrExpenseNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Expense deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllExpenses(c *gin.Context) {
	var query ExpenseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	expenses, err := ctrl.service.GetAllExpenses(query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve expenses", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Expenses retrieved successfully", expenses, nil)
}

func (ctrl *controller) GetSummary(c *gin.Context) {
	var busID *uuid.UUID
	if raw := c.Query("bus_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, err.Error())
			return
		}
		busID = &parsed
	}

	summary, err := ctrl.service.GetSummary(busID, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		switch {
		case errors.Is(err, ErrBusNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidDateRange):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to compute expense summary", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Expense summary retrieved successfully", summary, nil)
}
