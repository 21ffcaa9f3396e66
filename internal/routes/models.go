package routes

import (
	"time"

	"github.com/google/uuid"
)

type Route struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name            string    `json:"name" gorm:"not null;size:255"`
	Origin          string    `json:"origin" gorm:"not null;size:255"`
	Destination     string    `json:"destination" gorm:"not null;size:255"`
	DistanceKM      float64   `json:"distance_km" gorm:"check:distance_km >= 0"`
	DurationMinutes int       `json:"duration_minutes" gorm:"check:duration_minutes >= 0"`

	BoardingPoints []BoardingPoint `json:"boarding_points" gorm:"constraint:OnDelete:CASCADE;"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BoardingPoint is a named stop along a route where passengers get on or off.
type BoardingPoint struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	RouteID      uuid.UUID `json:"route_id" gorm:"type:uuid;not null;index"`
	Name         string    `json:"name" gorm:"not null;size:255"`
	Landmark     string    `json:"landmark" gorm:"size:255"`
	OffsetMinute int       `json:"offset_minute" gorm:"default:0"`
	Sequence     int       `json:"sequence" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type BoardingPointInput struct {
	Name         string `json:"name" binding:"required,min=2,max=255"`
	Landmark     string `json:"landmark" binding:"max=255"`
	OffsetMinute int    `json:"offset_minute" binding:"min=0"`
	Sequence     int    `json:"sequence" binding:"required,min=1"`
}

type CreateRouteRequest struct {
	Name            string               `json:"name" binding:"required,min=3,max=255"`
	Origin          string               `json:"origin" binding:"required,min=2,max=255"`
	Destination     string               `json:"destination" binding:"required,min=2,max=255"`
	DistanceKM      float64              `json:"distance_km" binding:"min=0"`
	DurationMinutes int                  `json:"duration_minutes" binding:"min=0"`
	BoardingPoints  []BoardingPointInput `json:"boarding_points" binding:"omitempty,dive"`
}

type UpdateRouteRequest struct {
	Name            *string              `json:"name" binding:"omitempty,min=3,max=255"`
	Origin          *string              `json:"origin" binding:"omitempty,min=2,max=255"`
	Destination     *string              `json:"destination" binding:"omitempty,min=2,max=255"`
	DistanceKM      *float64             `json:"distance_km" binding:"omitempty,min=0"`
	DurationMinutes *int                 `json:"duration_minutes" binding:"omitempty,min=0"`
	BoardingPoints  []BoardingPointInput `json:"boarding_points" binding:"omitempty,dive"`
}

type RouteListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
}

type RouteResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Origin          string                  `json:"origin"`
	Destination     string                  `json:"destination"`
	DistanceKM      float64                 `json:"distance_km"`
	DurationMinutes int                     `json:"duration_minutes"`
	BoardingPoints  []BoardingPointResponse `json:"boarding_points"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

type BoardingPointResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Landmark     string `json:"landmark"`
	OffsetMinute int    `json:"offset_minute"`
	Sequence     int    `json:"sequence"`
}

type PaginatedRoutes struct {
	Routes     []RouteResponse `json:"routes"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func (r *Route) ToResponse() RouteResponse {
	points := make([]BoardingPointResponse, len(r.BoardingPoints))
	for i, bp := range r.BoardingPoints {
		points[i] = BoardingPointResponse{
			ID:           bp.ID.String(),
			Name:         bp.Name,
			Landmark:     bp.Landmark,
			OffsetMinute: bp.OffsetMinute,
			Sequence:     bp.Sequence,
		}
	}

	return RouteResponse{
		ID:              r.ID.String(),
		Name:            r.Name,
		Origin:          r.Origin,
		Destination:     r.Destination,
		DistanceKM:      r.DistanceKM,
		DurationMinutes: r.DurationMinutes,
		BoardingPoints:  points,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Route) TableName() string {
	return "routes"
}

// TableName specifies the table name for GORM
func (BoardingPoint) TableName() string {
	return "boarding_points"
}
