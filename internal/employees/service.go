package employees

import (
	"errors"
	"fmt"

	"busexpress/internal/fleet"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrBusNotFound      = errors.New("bus not found")
)

// BusService is the slice of the fleet module employee assignment needs.
type BusService interface {
	GetBusByID(id uuid.UUID) (*fleet.BusResponse, error)
}

type Service interface {
	CreateEmployee(req CreateEmployeeRequest) (*EmployeeResponse, error)
	GetEmployeeByID(id uuid.UUID) (*EmployeeResponse, error)
	UpdateEmployee(id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error)
	DeleteEmployee(id uuid.UUID) error
	GetAllEmployees(query EmployeeListQuery) (*PaginatedEmployees, error)
	AssignBus(id uuid.UUID, req AssignBusRequest) (*EmployeeResponse, error)
	GetBusCrew(busID uuid.UUID) ([]EmployeeResponse, error)
}

type service struct {
	repo       Repository
	busService BusService
}

func NewService(repo Repository, busService BusService) Service {
	return &service{
		repo:       repo,
		busService: busService,
	}
}

func (s *service) CreateEmployee(req CreateEmployeeRequest) (*EmployeeResponse, error) {
	employee := &Employee{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Role:          EmployeeRole(req.Role),
		MonthlySalary: req.MonthlySalary,
		Status:        EmployeeActive,
	}

	if req.BusID != "" {
		busID, err := s.resolveBus(req.BusID)
		if err != nil {
			return nil, err
		}
		employee.BusID = &busID
	}

	if err := s.repo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	response := employee.ToResponse()
	return &response, nil
}

func (s *service) GetEmployeeByID(id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	response := employee.ToResponse()
	return &response, nil
}

func (s *service) UpdateEmployee(id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.MonthlySalary != nil {
		updates["monthly_salary"] = *req.MonthlySalary
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	employee, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	response := employee.ToResponse()
	return &response, nil
}

func (s *service) DeleteEmployee(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return s.repo.Delete(id)
}

func (s *service) GetAllEmployees(query EmployeeListQuery) (*PaginatedEmployees, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	employees, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, err
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, employees[i].ToResponse())
	}

	totalPages := int(totalCount) / query.Limit
	if int(totalCount)%query.Limit > 0 {
		totalPages++
	}

	return &PaginatedEmployees{
		Employees:  responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// AssignBus attaches the employee to a bus, or detaches when the request
// carries no bus ID.
func (s *service) AssignBus(id uuid.UUID, req AssignBusRequest) (*EmployeeResponse, error) {
	updates := make(map[string]interface{})
	if req.BusID == "" {
		updates["bus_id"] = nil
	} else {
		busID, err := s.resolveBus(req.BusID)
		if err != nil {
			return nil, err
		}
		updates["bus_id"] = busID
	}

	employee, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	response := employee.ToResponse()
	return &response, nil
}

func (s *service) GetBusCrew(busID uuid.UUID) ([]EmployeeResponse, error) {
	if _, err := s.busService.GetBusByID(busID); err != nil {
		return nil, ErrBusNotFound
	}

	employees, err := s.repo.GetByBus(busID)
	if err != nil {
		return nil, err
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, employees[i].ToResponse())
	}
	return responses, nil
}

func (s *service) resolveBus(rawID string) (uuid.UUID, error) {
	busID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid bus id: %w", err)
	}
	if _, err := s.busService.GetBusByID(busID); err != nil {
		return uuid.Nil, ErrBusNotFound
	}
	return busID, nil
}
