package expenses

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(expense *Expense) error
	GetByID(id uuid.UUID) (*Expense, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Expense, error)
	Delete(id uuid.UUID) error
	GetAll(query ExpenseListQuery) ([]Expense, int64, error)
	// Totals aggregates expense amounts per category, optionally scoped
	// to one bus and a [from, to) window.
	Totals(busID *uuid.UUID, from, to *time.Time) ([]CategoryTotal, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(expense *Expense) error {
	return r.db.Create(expense).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Expense, error) {
	var expense Expense
	err := r.db.Where("id = ?", id).First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Expense, error) {
	var expense Expense

	if err := r.db.Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&expense).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, err
	}

	return &expense, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Expense{}).Error
}

func (r *repository) GetAll(query ExpenseListQuery) ([]Expense, int64, error) {
	var expenses []Expense
	var totalCount int64

	db := r.db.Model(&Expense{})

	if query.BusID != "" {
		db = db.Where("bus_id = ?", query.BusID)
	}
	if query.TripID != "" {
		db = db.Where("trip_id = ?", query.TripID)
	}
	if query.Category != "" {
		db = db.Where("category = ?", query.Category)
	}
	if query.DateFrom != "" {
		db = db.Where("incurred_on >= ?", query.DateFrom)
	}
	if query.DateTo != "" {
		db = db.Where("incurred_on <= ?", query.DateTo)
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

	err := db.Order("incurred_on DESC, created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&expenses).Error

	return expenses, totalCount, err
}

func (r *repository) Totals(busID *uuid.UUID, from, to *time.Time) ([]CategoryTotal, error) {
	db := r.db.Model(&Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC")

	if busID != nil {
		db = db.Where("bus_id = ?", *busID)
	}
	if from != nil {
		db = db.Where("incurred_on >= ?", *from)
	}
	if to != nil {
		db = db.Where("incurred_on < ?", *to)
	}

	var totals []CategoryTotal
	if err := db.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}
