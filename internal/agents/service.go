package agents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAgentNotFound    = errors.New("agent not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrProfileExists    = errors.New("user already has an agent profile")
	ErrInvalidDateRange = errors.New("date_from must not be after date_to")
)

// UserDirectory resolves staff account details. Implemented by the auth
// module's adapter to avoid an import cycle.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (email, firstName, lastName string, err error)
}

type Service interface {
	CreateAgent(ctx context.Context, req CreateAgentRequest) (*AgentResponse, error)
	GetAgentByID(ctx context.Context, id uuid.UUID) (*AgentResponse, error)
	GetAgentByUserID(ctx context.Context, userID uuid.UUID) (*AgentResponse, error)
	UpdateAgent(ctx context.Context, id uuid.UUID, req UpdateAgentRequest) (*AgentResponse, error)
	GetAllAgents(ctx context.Context) ([]AgentResponse, error)
	GetCommissionSummary(ctx context.Context, id uuid.UUID, query CommissionQuery) (*CommissionSummary, error)
}

type service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) Service {
	return &service{
		repo:  repo,
		users: users,
	}
}

func (s *service) CreateAgent(ctx context.Context, req CreateAgentRequest) (*AgentResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	if _, _, _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.repo.UserHasProfile(userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProfileExists
	}

	agent := &Agent{
		UserID:         userID,
		CommissionRate: req.CommissionRate,
		Active:         true,
	}

	if err := s.repo.Create(agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return s.decorate(ctx, agent), nil
}

func (s *service) GetAgentByID(ctx context.Context, id uuid.UUID) (*AgentResponse, error) {
	agent, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return s.decorate(ctx, agent), nil
}

func (s *service) GetAgentByUserID(ctx context.Context, userID uuid.UUID) (*AgentResponse, error) {
	agent, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return s.decorate(ctx, agent), nil
}

func (s *service) UpdateAgent(ctx context.Context, id uuid.UUID, req UpdateAgentRequest) (*AgentResponse, error) {
	updates := make(map[string]interface{})
	if req.CommissionRate != nil {
		updates["commission_rate"] = *req.CommissionRate
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	agent, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	return s.decorate(ctx, agent), nil
}

func (s *service) GetAllAgents(ctx context.Context) ([]AgentResponse, error) {
	agents, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	responses := make([]AgentResponse, 0, len(agents))
	for i := range agents {
		responses = append(responses, *s.decorate(ctx, &agents[i]))
	}
	return responses, nil
}

// GetCommissionSummary computes the agent's payout over a period: the sum of
// confirmed booking amounts times the commission rate. Cancelled bookings
// never count.
func (s *service) GetCommissionSummary(ctx context.Context, id uuid.UUID, query CommissionQuery) (*CommissionSummary, error) {
	agent, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	from, to, err := parsePeriod(query)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.ConfirmedSales(agent.UserID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &CommissionSummary{
		AgentID:        agent.ID.String(),
		UserID:         agent.UserID.String(),
		CommissionRate: agent.CommissionRate,
		BookingCount:   totals.BookingCount,
		SeatsSold:      totals.SeatsSold,
		TotalSales:     totals.TotalSales,
		Commission:     totals.TotalSales * agent.CommissionRate / 100,
		DateFrom:       query.DateFrom,
		DateTo:         query.DateTo,
	}

	if _, firstName, lastName, err := s.users.GetUserByID(ctx, agent.UserID); err == nil {
		summary.Name = firstName + " " + lastName
	}

	return summary, nil
}

func (s *service) decorate(ctx context.Context, agent *Agent) *AgentResponse {
	response := agent.ToResponse()
	if email, firstName, lastName, err := s.users.GetUserByID(ctx, agent.UserID); err == nil {
		response.Name = firstName + " " + lastName
		response.Email = email
	}
	return &response
}

// parsePeriod turns the YYYY-MM-DD bounds into [from, to) timestamps. The
// upper bound is exclusive and shifted one day so date_to is inclusive.
func parsePeriod(query CommissionQuery) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if query.DateFrom != "" {
		parsed, err := time.Parse("2006-01-02", query.DateFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_from: %w", err)
		}
		from = &parsed
	}

	if query.DateTo != "" {
		parsed, err := time.Parse("2006-01-02", query.DateTo)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_to: %w", err)
		}
		upper := parsed.AddDate(0, 0, 1)
		to = &upper
	}

	if from != nil && to != nil && from.After(*to) {
		return nil, nil, ErrInvalidDateRange
	}

	return from, to, nil
}
