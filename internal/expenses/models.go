package expenses

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryFuel        Category = "FUEL"
	CategoryToll        Category = "TOLL"
	CategoryMaintenance Category = "MAINTENANCE"
	CategorySalary      Category = "SALARY"
	CategoryPermit      Category = "PERMIT"
	CategoryOther       Category = "OTHER"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryFuel, CategoryToll, CategoryMaintenance, CategorySalary, CategoryPermit, CategoryOther:
		return true
	}
	return false
}

// Expense is one operating cost entry, attributed to a bus and optionally to
// a specific trip.
type Expense struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BusID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"bus_id"`
	TripID     *uuid.UUID `gorm:"type:uuid;index" json:"trip_id,omitempty"`
	Category   Category   `gorm:"type:varchar(20);not null;check:category IN ('FUEL', 'TOLL', 'MAINTENANCE', 'SALARY', 'PERMIT', 'OTHER')" json:"category"`
	Amount     float64    `gorm:"not null" json:"amount"`
	IncurredOn time.Time  `gorm:"not null;index" json:"incurred_on"`
	Note       string     `gorm:"size:500" json:"note"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid" json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

type CreateExpenseRequest struct {
	BusID      string  `json:"bus_id" binding:"required,uuid"`
	TripID     string  `json:"trip_id" binding:"omitempty,uuid"`
	Category   string  `json:"category" binding:"required,oneof=FUEL TOLL MAINTENANCE SALARY PERMIT OTHER"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	IncurredOn string  `json:"incurred_on" binding:"required"` // YYYY-MM-DD
	Note       string  `json:"note" binding:"omitempty,max=500"`
}

type UpdateExpenseRequest struct {
	Category   *string  `json:"category" binding:"omitempty,oneof=FUEL TOLL MAINTENANCE SALARY PERMIT OTHER"`
	Amount     *float64 `json:"amount" binding:"omitempty,gt=0"`
	IncurredOn *string  `json:"incurred_on"`
	Note       *string  `json:"note" binding:"omitempty,max=500"`
}

type ExpenseListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	BusID    string `form:"bus_id" binding:"omitempty,uuid"`
	TripID   string `form:"trip_id" binding:"omitempty,uuid"`
	Category string `form:"category" binding:"omitempty,oneof=FUEL TOLL MAINTENANCE SALARY PERMIT OTHER"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

type ExpenseResponse struct {
	ID         string    `json:"id"`
	BusID      string    `json:"bus_id"`
	TripID     *string   `json:"trip_id,omitempty"`
	Category   Category  `json:"category"`
	Amount     float64   `json:"amount"`
	IncurredOn string    `json:"incurred_on"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type PaginatedExpenses struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// CategoryTotal is one slice of the per-category breakdown.
type CategoryTotal struct {
	Category Category `gorm:"column:category" json:"category"`
	Total    float64  `gorm:"column:total" json:"total"`
	Count    int64    `gorm:"column:count" json:"count"`
}

// ExpenseSummary is the totals view for one bus (or the whole fleet) over a
// period.
type ExpenseSummary struct {
	BusID      string          `json:"bus_id,omitempty"`
	DateFrom   string          `json:"date_from,omitempty"`
	DateTo     string          `json:"date_to,omitempty"`
	Total      float64         `json:"total"`
	ByCategory []CategoryTotal `json:"by_category"`
}

func (e *Expense) ToResponse() ExpenseResponse {
	resp := ExpenseResponse{
		ID:         e.ID.String(),
		BusID:      e.BusID.String(),
		Category:   e.Category,
		Amount:     e.Amount,
		IncurredOn: e.IncurredOn.Format("2006-01-02"),
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
	}
	if e.TripID != nil {
		tripID := e.TripID.String()
		resp.TripID = &tripID
	}
	return resp
}
