package trips

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(trip *Trip) error
	GetByID(id uuid.UUID) (*Trip, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Trip, error)
	Delete(id uuid.UUID) error
	GetAll(query TripListQuery) ([]Trip, int64, error)
	BusScheduledAt(busID uuid.UUID, departureAt time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(trip *Trip) error {
	return r.db.Create(trip).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Trip, error) {
	var trip Trip
	err := r.db.Preload("Bus").
		Preload("Route").
		Preload("Route.BoardingPoints", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("id = ?", id).First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Trip, error) {
	if err := r.db.Model(&Trip{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Trip{}).Error
}

func (r *repository) GetAll(query TripListQuery) ([]Trip, int64, error) {
	var trips []Trip
	var totalCount int64

	db := r.db.Model(&Trip{})

	if query.RouteID != "" {
		db = db.Where("route_id = ?", query.RouteID)
	}

	if query.BusID != "" {
		db = db.Where("bus_id = ?", query.BusID)
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if query.Date != "" {
		if day, err := time.Parse("2006-01-02", query.Date); err == nil {
			db = db.Where("departure_at >= ? AND departure_at < ?", day, day.Add(24*time.Hour))
		}
	}

	if query.Upcoming {
		db = db.Where("departure_at > ? AND status = ?", time.Now(), TripStatusScheduled)
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

	err := db.Preload("Bus").Preload("Route").
		Order("departure_at ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&trips).Error

	return trips, totalCount, err
}

func (r *repository) BusScheduledAt(busID uuid.UUID, departureAt time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&Trip{}).
		Where("bus_id = ? AND departure_at = ? AND status IN ?",
			busID, departureAt, []TripStatus{TripStatusScheduled, TripStatusDeparted}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
