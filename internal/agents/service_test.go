package agents

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAgentRepo struct {
	agents map[uuid.UUID]*Agent
	totals SalesTotals
	from   *time.Time
	to     *time.Time
}

func newFakeAgentRepo(agents ...*Agent) *fakeAgentRepo {
	repo := &fakeAgentRepo{agents: make(map[uuid.UUID]*Agent)}
	for _, a := range agents {
		repo.agents[a.ID] = a
	}
	return repo
}

func (f *fakeAgentRepo) Create(agent *Agent) error {
	if agent.ID == uuid.Nil {
		agent.ID = uuid.New()
	}
	f.agents[agent.ID] = agent
	return nil
}

func (f *fakeAgentRepo) GetByID(id uuid.UUID) (*Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return agent, nil
}

func (f *fakeAgentRepo) GetByUserID(userID uuid.UUID) (*Agent, error) {
	for _, a := range f.agents {
		if a.UserID == userID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAgentRepo) Update(id uuid.UUID, updates map[string]interface{}) (*Agent, error) {
	return f.GetByID(id)
}

func (f *fakeAgentRepo) GetAll() ([]Agent, error) {
	out := make([]Agent, 0, len(f.agents))
	for _, a := range f.agents {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAgentRepo) UserHasProfile(userID uuid.UUID) (bool, error) {
	_, err := f.GetByUserID(userID)
	return err == nil, nil
}

func (f *fakeAgentRepo) ConfirmedSales(userID uuid.UUID, from, to *time.Time) (*SalesTotals, error) {
	f.from, f.to = from, to
	totals := f.totals
	return &totals, nil
}

type fakeDirectory struct {
	known map[uuid.UUID]bool
}

func (f fakeDirectory) GetUserByID(ctx context.Context, userID uuid.UUID) (string, string, string, error) {
	if f.known != nil && !f.known[userID] {
		return "", "", "", gorm.ErrRecordNotFound
	}
	return "sunil.agent@busexpress.in", "Sunil", "Deshmukh", nil
}

func TestGetCommissionSummaryComputesCommission(t *testing.T) {
	agent := &Agent{ID: uuid.New(), UserID: uuid.New(), CommissionRate: 5.0, Active: true}
	repo := newFakeAgentRepo(agent)
	repo.totals = SalesTotals{BookingCount: 12, SeatsSold: 20, TotalSales: 17000}

	svc := NewService(repo, fakeDirectory{})

	summary, err := svc.GetCommissionSummary(context.Background(), agent.ID, CommissionQuery{})
	require.NoError(t, err)

	assert.Equal(t, int64(12), summary.BookingCount)
	assert.Equal(t, int64(20), summary.SeatsSold)
	assert.Equal(t, 17000.0, summary.TotalSales)
	assert.Equal(t, 850.0, summary.Commission)
	assert.Equal(t, "Sunil Deshmukh", summary.Name)
}

func TestGetCommissionSummaryPeriodBounds(t *testing.T) {
	agent := &Agent{ID: uuid.New(), UserID: uuid.New(), CommissionRate: 7.5}
	repo := newFakeAgentRepo(agent)

	svc := NewService(repo, fakeDirectory{})

	_, err := svc.GetCommissionSummary(context.Background(), agent.ID, CommissionQuery{
		DateFrom: "2026-08-01",
		DateTo:   "2026-08-31",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.from)
	require.NotNil(t, repo.to)
	assert.Equal(t, "2026-08-01", repo.from.Format("2006-01-02"))
	// date_to is inclusive, so the upper bound is the following midnight
	assert.Equal(t, "2026-09-01", repo.to.Format("2006-01-02"))
}

func TestGetCommissionSummaryRejectsInvertedRange(t *testing.T) {
	agent := &Agent{ID: uuid.New(), UserID: uuid.New(), CommissionRate: 5.0}
	svc := NewService(newFakeAgentRepo(agent), fakeDirectory{})

	_, err := svc.GetCommissionSummary(context.Background(), agent.ID, CommissionQuery{
		DateFrom: "2026-08-31",
		DateTo:   "2026-08-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestGetCommissionSummaryUnknownAgent(t *testing.T) {
	svc := NewService(newFakeAgentRepo(), fakeDirectory{})

	_, err := svc.GetCommissionSummary(context.Background(), uuid.New(), CommissionQuery{})
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestCreateAgentRejectsDuplicateProfile(t *testing.T) {
	userID := uuid.New()
	existing := &Agent{ID: uuid.New(), UserID: userID, CommissionRate: 5.0}
	svc := NewService(newFakeAgentRepo(existing), fakeDirectory{})

	_, err := svc.CreateAgent(context.Background(), CreateAgentRequest{
		UserID:         userID.String(),
		CommissionRate: 6.0,
	})
	assert.ErrorIs(t, err, ErrProfileExists)
}

func TestCreateAgentUnknownUser(t *testing.T) {
	svc := NewService(newFakeAgentRepo(), fakeDirectory{known: map[uuid.UUID]bool{}})

	_, err := svc.CreateAgent(context.Background(), CreateAgentRequest{
		UserID:         uuid.New().String(),
		CommissionRate: 6.0,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
