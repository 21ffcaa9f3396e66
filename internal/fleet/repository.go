package fleet

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(bus *Bus) error
	GetByID(id uuid.UUID) (*Bus, error)
	GetByRegistration(registrationNumber string) (*Bus, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Bus, error)
	Delete(id uuid.UUID) error
	GetAll(query BusListQuery) ([]Bus, int64, error)
	GetActive() ([]Bus, error)
	RegistrationExists(registrationNumber string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(bus *Bus) error {
	return r.db.Create(bus).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Bus, error) {
	var bus Bus
	err := r.db.Where("id = ?", id).First(&bus).Error
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func (r *repository) GetByRegistration(registrationNumber string) (*Bus, error) {
	var bus Bus
	err := r.db.Where("registration_number = ?", registrationNumber).First(&bus).Error
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Bus, error) {
	var bus Bus

	if err := r.db.Where("id = ?", id).First(&bus).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&bus).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&bus).Error; err != nil {
		return nil, err
	}

	return &bus, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Bus{}).Error
}

func (r *repository) GetAll(query BusListQuery) ([]Bus, int64, error) {
	var buses []Bus
	var totalCount int64

	db := r.db.Model(&Bus{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(registration_number) LIKE ?",
			searchTerm, searchTerm)
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
		Find(&buses).Error

	return buses, totalCount, err
}

func (r *repository) GetActive() ([]Bus, error) {
	var buses []Bus
	err := r.db.Where("status = ?", BusStatusActive).Order("name ASC").Find(&buses).Error
	return buses, err
}

func (r *repository) RegistrationExists(registrationNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&Bus{}).Where("registration_number = ?", registrationNumber).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
