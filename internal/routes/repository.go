package routes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(route *Route) error
	GetByID(id uuid.UUID) (*Route, error)
	Update(route *Route, updates map[string]interface{}, points []BoardingPoint) (*Route, error)
	Delete(id uuid.UUID) error
	GetAll(query RouteListQuery) ([]Route, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(route *Route) error {
	return r.db.Create(route).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Route, error) {
	var route Route
	err := r.db.Preload("BoardingPoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).Where("id = ?", id).First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// Update applies field updates and, when points is non-nil, replaces the
// route's boarding points wholesale inside one transaction.
func (r *repository) Update(route *Route, updates map[string]interface{}, points []BoardingPoint) (*Route, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(route).Updates(updates).Error; err != nil {
				return err
			}
		}

		if points != nil {
			if err := tx.Where("route_id = ?", route.ID).Delete(&BoardingPoint{}).Error; err != nil {
				return fmt.Errorf("failed to clear boarding points: %w", err)
			}
			for i := range points {
				points[i].RouteID = route.ID
			}
			if len(points) > 0 {
				if err := tx.Create(&points).Error; err != nil {
					return fmt.Errorf("failed to create boarding points: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(route.ID)
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("route_id = ?", id).Delete(&BoardingPoint{}).Error; err != nil {
			return fmt.Errorf("failed to delete boarding points: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&Route{}).Error; err != nil {
			return fmt.Errorf("failed to delete route: %w", err)
		}
		return nil
	})
}

func (r *repository) GetAll(query RouteListQuery) ([]Route, int64, error) {
	var routes []Route
	var totalCount int64

	db := r.db.Model(&Route{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(origin) LIKE ? OR LOWER(destination) LIKE ?",
			searchTerm, searchTerm, searchTerm)
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

	err := db.Preload("BoardingPoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).Order("name ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&routes).Error

	return routes, totalCount, err
}
