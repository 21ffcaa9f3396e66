package agents

import (
	"time"

	"github.com/google/uuid"
)

// Agent is the selling profile attached to a staff account. Commission is a
// percentage of confirmed booking revenue.
type Agent struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CommissionRate float64   `gorm:"not null;default:0" json:"commission_rate"`
	Active         bool      `gorm:"default:true" json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Agent) TableName() string {
	return "agents"
}

type CreateAgentRequest struct {
	UserID         string  `json:"user_id" binding:"required,uuid"`
	CommissionRate float64 `json:"commission_rate" binding:"required,gte=0,lte=100"`
}

type UpdateAgentRequest struct {
	CommissionRate *float64 `json:"commission_rate" binding:"omitempty,gte=0,lte=100"`
	Active         *bool    `json:"active"`
}

type AgentResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email,omitempty"`
	CommissionRate float64   `json:"commission_rate"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CommissionQuery bounds the commission summary to a period. Dates are
// YYYY-MM-DD; an empty bound is open-ended.
type CommissionQuery struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// CommissionSummary is the payout view for one agent over a period.
type CommissionSummary struct {
	AgentID        string  `json:"agent_id"`
	UserID         string  `json:"user_id"`
	Name           string  `json:"name,omitempty"`
	CommissionRate float64 `json:"commission_rate"`
	BookingCount   int64   `json:"booking_count"`
	SeatsSold      int64   `json:"seats_sold"`
	TotalSales     float64 `json:"total_sales"`
	Commission     float64 `json:"commission"`
	DateFrom       string  `json:"date_from,omitempty"`
	DateTo         string  `json:"date_to,omitempty"`
}

func (a *Agent) ToResponse() AgentResponse {
	return AgentResponse{
		ID:             a.ID.String(),
		UserID:         a.UserID.String(),
		CommissionRate: a.CommissionRate,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
