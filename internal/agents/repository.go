package agents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesTotals is the raw aggregate over confirmed bookings used to compute
// commission.
type SalesTotals struct {
	BookingCount int64   `gorm:"column:booking_count"`
	SeatsSold    int64   `gorm:"column:seats_sold"`
	TotalSales   float64 `gorm:"column:total_sales"`
}

type Repository interface {
	Create(agent *Agent) error
	GetByID(id uuid.UUID) (*Agent, error)
	GetByUserID(userID uuid.UUID) (*Agent, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Agent, error)
	GetAll() ([]Agent, error)
	UserHasProfile(userID uuid.UUID) (bool, error)
	// ConfirmedSales aggregates confirmed bookings sold under the agent's
	// user account within the optional period bounds.
	ConfirmedSales(userID uuid.UUID, from, to *time.Time) (*SalesTotals, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(agent *Agent) error {
	return r.db.Create(agent).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Agent, error) {
	var agent Agent
	err := r.db.Where("id = ?", id).First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repository) GetByUserID(userID uuid.UUID) (*Agent, error) {
	var agent Agent
	err := r.db.Where("user_id = ?", userID).First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Agent, error) {
	var agent Agent

	if err := r.db.Where("id = ?", id).First(&agent).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&agent).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&agent).Error; err != nil {
		return nil, err
	}

	return &agent, nil
}

func (r *repository) GetAll() ([]Agent, error) {
	var agents []Agent
	err := r.db.Order("created_at ASC").Find(&agents).Error
	return agents, err
}

func (r *repository) UserHasProfile(userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&Agent{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ConfirmedSales(userID uuid.UUID, from, to *time.Time) (*SalesTotals, error) {
	db := r.db.Table("bookings").
		Select("COUNT(*) AS booking_count, COALESCE(SUM(total_seats), 0) AS seats_sold, COALESCE(SUM(total_amount), 0) AS total_sales").
		Where("agent_id = ? AND status = ?", userID, "CONFIRMED")

	if from != nil {
		db = db.Where("created_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("created_at < ?", *to)
	}

	var totals SalesTotals
	if err := db.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}
