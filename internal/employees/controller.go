package employees

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"busexpress/internal/shared/utils/response"
)

type Controller interface {
	CreateEmployee(c *gin.Context)
	GetEmployee(c *gin.Context)
	UpdateEmployee(c *gin.Context)
	DeleteEmployee(c *gin.Context)
	GetAllEmployees(c *gin.Context)
	AssignBus(c *gin.Context)
	GetBusCrew(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	employee, err := ctrl.service.CreateEmployee(req)
	if err != nil {
		if errors.Is(err, ErrBusNotFound) {
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create employee", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Employee created successfully", employee, nil)
}

func (ctrl *controller) GetEmployee(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("employeeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid employee ID", nil, err.Error())
		return
	}

	employee, err := ctrl.service.GetEmployeeByID(employeeID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEmployeeNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Employee retrieved successfully", employee, nil)
}

func (ctrl *controller) UpdateEmployee(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("employeeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid employee ID", nil, err.Error())
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	employee, err := ctrl.service.UpdateEmployee(employeeID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEmployeeNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Employee updated successfully", employee, nil)
}

func (ctrl *controller) DeleteEmployee(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("employeeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid employee ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteEmployee(employeeID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEmployeeNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Employee deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllEmployees(c *gin.Context) {
	var query EmployeeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	employees, err := ctrl.service.GetAllEmployees(query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve employees", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Employees retrieved successfully", employees, nil)
}

func (ctrl *controller) AssignBus(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("employeeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid employee ID", nil, err.Error())
		return
	}

	var req AssignBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	employee, err := ctrl.service.AssignBus(employeeID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmployeeNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrBusNotFound):
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to assign bus", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus assignment updated successfully", employee, nil)
}

func (ctrl *controller) GetBusCrew(c *gin.Context) {
	busID, err := uuid.Parse(c.Param("busId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, err.Error())
		return
	}

	crew, err := ctrl.service.GetBusCrew(busID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrBusNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus crew retrieved successfully", crew, nil)
}
