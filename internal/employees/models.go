package employees

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeRole string

const (
	RoleDriver    EmployeeRole = "DRIVER"
	RoleConductor EmployeeRole = "CONDUCTOR"
	RoleMechanic  EmployeeRole = "MECHANIC"
	RoleCleaner   EmployeeRole = "CLEANER"
)

func (r EmployeeRole) IsValid() bool {
	switch r {
	case RoleDriver, RoleConductor, RoleMechanic, RoleCleaner:
		return true
	}
	return false
}

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "ACTIVE"
	EmployeeInactive EmployeeStatus = "INACTIVE"
)

// Employee is a fleet staff member. MonthlySalary feeds the expense
// analytics via salary expense entries.
type Employee struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName     string         `gorm:"not null;size:100" json:"first_name"`
	LastName      string         `gorm:"not null;size:100" json:"last_name"`
	Phone         string         `gorm:"not null;size:20" json:"phone"`
	Role          EmployeeRole   `gorm:"type:varchar(20);not null;check:role IN ('DRIVER', 'CONDUCTOR', 'MECHANIC', 'CLEANER')" json:"role"`
	BusID         *uuid.UUID     `gorm:"type:uuid;index" json:"bus_id,omitempty"`
	MonthlySalary float64        `gorm:"not null;default:0" json:"monthly_salary"`
	Status        EmployeeStatus `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

type CreateEmployeeRequest struct {
	FirstName     string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName      string  `json:"last_name" binding:"required,min=2,max=100"`
	Phone         string  `json:"phone" binding:"required,min=10,max=15"`
	Role          string  `json:"role" binding:"required,oneof=DRIVER CONDUCTOR MECHANIC CLEANER"`
	BusID         string  `json:"bus_id" binding:"omitempty,uuid"`
	MonthlySalary float64 `json:"monthly_salary" binding:"required,gt=0"`
}

type UpdateEmployeeRequest struct {
	FirstName     *string  `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName      *string  `json:"last_name" binding:"omitempty,min=2,max=100"`
	Phone         *string  `json:"phone" binding:"omitempty,min=10,max=15"`
	Role          *string  `json:"role" binding:"omitempty,oneof=DRIVER CONDUCTOR MECHANIC CLEANER"`
	MonthlySalary *float64 `json:"monthly_salary" binding:"omitempty,gt=0"`
	Status        *string  `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type AssignBusRequest struct {
	BusID string `json:"bus_id" binding:"omitempty,uuid"`
}

type EmployeeListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Role   string `form:"role" binding:"omitempty,oneof=DRIVER CONDUCTOR MECHANIC CLEANER"`
	BusID  string `form:"bus_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Search string `form:"search"`
}

type EmployeeResponse struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Phone         string         `json:"phone"`
	Role          EmployeeRole   `json:"role"`
	BusID         *string        `json:"bus_id,omitempty"`
	MonthlySalary float64        `json:"monthly_salary"`
	Status        EmployeeStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type PaginatedEmployees struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

func (e *Employee) ToResponse() EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID.String(),
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Phone:         e.Phone,
		Role:          e.Role,
		MonthlySalary: e.MonthlySalary,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.BusID != nil {
		busID := e.BusID.String()
		resp.BusID = &busID
	}
	return resp
}
