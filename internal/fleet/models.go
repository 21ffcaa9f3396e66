package fleet

import (
	"time"

	"github.com/google/uuid"
)

type BusStatus string

const (
	BusStatusActive      BusStatus = "ACTIVE"
	BusStatusMaintenance BusStatus = "MAINTENANCE"
	BusStatusRetired     BusStatus = "RETIRED"
)

type Bus struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name               string    `json:"name" gorm:"not null;size:255"`
	RegistrationNumber string    `json:"registration_number" gorm:"not null;uniqueIndex;size:20"`
	TotalSeats         int       `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	Amenities          []string  `json:"amenities" gorm:"serializer:json"`
	Status             BusStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type BusResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	TotalSeats         int       `json:"total_seats"`
	Amenities          []string  `json:"amenities"`
	Status             BusStatus `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CreateBusRequest struct {
	Name               string   `json:"name" binding:"required,min=3,max=255"`
	RegistrationNumber string   `json:"registration_number" binding:"required,busreg"`
	TotalSeats         int      `json:"total_seats" binding:"required,min=6,max=90"`
	Amenities          []string `json:"amenities"`
}

type UpdateBusRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=3,max=255"`
	Amenities []string `json:"amenities"`
	Status    *string  `json:"status" binding:"omitempty,oneof=ACTIVE MAINTENANCE RETIRED"`
}

type BusListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE MAINTENANCE RETIRED"`
}

type PaginatedBuses struct {
	Buses      []BusResponse `json:"buses"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

func (b *Bus) ToResponse() BusResponse {
	amenities := b.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return BusResponse{
		ID:                 b.ID.String(),
		Name:               b.Name,
		RegistrationNumber: b.RegistrationNumber,
		TotalSeats:         b.TotalSeats,
		Amenities:          amenities,
		Status:             b.Status,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Bus) TableName() string {
	return "buses"
}
