package employees

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(employee *Employee) error
	GetByID(id uuid.UUID) (*Employee, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Employee, error)
	Delete(id uuid.UUID) error
	GetAll(query EmployeeListQuery) ([]Employee, int64, error)
	GetByBus(busID uuid.UUID) ([]Employee, error)
	// ActiveSalaryTotal sums monthly salaries of active employees,
	// optionally limited to one bus.
	ActiveSalaryTotal(busID *uuid.UUID) (float64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(employee *Employee) error {
	return r.db.Create(employee).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Employee, error) {
	var employee Employee
	err := r.db.Where("id = ?", id).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Employee, error) {
	var employee Employee

	if err := r.db.Where("id = ?", id).First(&employee).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&employee).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&employee).Error; err != nil {
		return nil, err
	}

	return &employee, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Employee{}).Error
}

func (r *repository) GetAll(query EmployeeListQuery) ([]Employee, int64, error) {
	var employees []Employee
	var totalCount int64

	db := r.db.Model(&Employee{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if query.Role != "" {
		db = db.Where("role = ?", query.Role)
	}

	if query.BusID != "" {
		db = db.Where("bus_id = ?", query.BusID)
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&employees).Error

	return employees, totalCount, err
}

func (r *repository) GetByBus(busID uuid.UUID) ([]Employee, error) {
	var employees []Employee
	err := r.db.Where("bus_id = ? AND status = ?", busID, EmployeeActive).
		Order("role ASC, first_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) ActiveSalaryTotal(busID *uuid.UUID) (float64, error) {
	var total float64
	db := r.db.Model(&Employee{}).Where("status = ?", EmployeeActive)
	if busID != nil {
		db = db.Where("bus_id = ?", *busID)
	}
	err := db.Select("COALESCE(SUM(monthly_salary), 0)").Scan(&total).Error
	return total, err
}
