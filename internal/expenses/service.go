package expenses

import (
	"errors"
	"fmt"
	"time"

	"busexpress/internal/fleet"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrBusNotFound      = errors.New("bus not found")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("date_from must not be after date_to")
)

// BusService is the slice of the fleet module expense attribution needs.
type BusService interface {
	GetBusByID(id uuid.UUID) (*fleet.BusResponse, error)
}

type Service interface {
	CreateExpense(userID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error)
	GetExpenseByID(id uuid.UUID) (*ExpenseResponse, error)
	UpdateExpense(id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error)
	DeleteExpense(id uuid.UUID) error
	GetAllExpenses(query ExpenseListQuery) (*PaginatedExpenses, error)
	GetSummary(busID *uuid.UUID, dateFrom, dateTo string) (*ExpenseSummary, error)
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

func (s *service) CreateExpense(userID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	busID, err := uuid.Parse(req.BusID)
	if err != nil {
		return nil, fmt.Errorf("invalid bus id: %w", err)
	}

	if _, err := s.busService.GetBusByID(busID); err != nil {
		return nil, ErrBusNotFound
	}

	incurredOn, err := time.Parse("2006-01-02", req.IncurredOn)
	if err != nil {
		return nil, ErrInvalidDate
	}

	expense := &Expense{
		BusID:      busID,
		Category:   Category(req.Category),
		Amount:     req.Amount,
		IncurredOn: incurredOn,
		Note:       req.Note,
		CreatedBy:  userID,
	}

	if req.TripID != "" {
		tripID, err := uuid.Parse(req.TripID)
		if err != nil {
			return nil, fmt.Errorf("invalid trip id: %w", err)
		}
		expense.TripID = &tripID
	}

	if err := s.repo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	response := expense.ToResponse()
	return &response, nil
}

func (s *service) GetExpenseByID(id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	response := expense.ToResponse()
	return &response, nil
}

func (s *service) UpdateExpense(id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	updates := make(map[string]interface{})
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.IncurredOn != nil {
		incurredOn, err := time.Parse("2006-01-02", *req.IncurredOn)
		if err != nil {
			return nil, ErrInvalidDate
		}
		updates["incurred_on"] = incurredOn
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}

	expense, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	response := expense.ToResponse()
	return &response, nil
}

func (s *service) DeleteExpense(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	return s.repo.Delete(id)
}

func (s *service) GetAllExpenses(query ExpenseListQuery) (*PaginatedExpenses, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	expenses, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, expenses[i].ToResponse())
	}

	totalPages := int(totalCount) / query.Limit
	if int(totalCount)%query.Limit > 0 {
		totalPages++
	}

	return &PaginatedExpenses{
		Expenses:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetSummary returns total spend and the per-category breakdown, optionally
// scoped to one bus and a date window.
func (s *service) GetSummary(busID *uuid.UUID, dateFrom, dateTo string) (*ExpenseSummary, error) {
	if busID != nil {
		if _, err := s.busService.GetBusByID(*busID); err != nil {
			return nil, ErrBusNotFound
		}
	}

	var from, to *time.Time
	if dateFrom != "" {
		parsed, err := time.Parse("2006-01-02", dateFrom)
		if err != nil {
			return nil, ErrInvalidDate
		}
		from = &parsed
	}
	if dateTo != "" {
		parsed, err := time.Parse("2006-01-02", dateTo)
		if err != nil {
			return nil, ErrInvalidDate
		}
		upper := parsed.AddDate(0, 0, 1)
		to = &upper
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, ErrInvalidDateRange
	}

	totals, err := s.repo.Totals(busID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &ExpenseSummary{
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		ByCategory: totals,
	}
	if busID != nil {
		summary.BusID = busID.String()
	}
	for _, t := range totals {
		summary.Total += t.Total
	}

	return summary, nil
}
