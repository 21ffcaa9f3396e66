package trips

import (
	"time"

	"busexpress/internal/fleet"
	"busexpress/internal/routes"
	"busexpress/internal/seatmap"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusScheduled TripStatus = "SCHEDULED"
	TripStatusDeparted  TripStatus = "DEPARTED"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

type Trip struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BusID        uuid.UUID  `json:"bus_id" gorm:"type:uuid;not null;index"`
	RouteID      uuid.UUID  `json:"route_id" gorm:"type:uuid;not null;index"`
	DepartureAt  time.Time  `json:"departure_at" gorm:"not null"`
	PricePerSeat float64    `json:"price_per_seat" gorm:"not null;check:price_per_seat >= 0"`
	Status       TripStatus `json:"status" gorm:"type:varchar(20);default:'SCHEDULED'"`
	BookedCount  int        `json:"booked_count" gorm:"default:0;check:booked_count >= 0"`

	Bus   *fleet.Bus    `json:"bus,omitempty" gorm:"foreignKey:BusID"`
	Route *routes.Route `json:"route,omitempty" gorm:"foreignKey:RouteID"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type CreateTripRequest struct {
	BusID        string    `json:"bus_id" binding:"required,uuid"`
	RouteID      string    `json:"route_id" binding:"required,uuid"`
	DepartureAt  time.Time `json:"departure_at" binding:"required"`
	PricePerSeat float64   `json:"price_per_seat" binding:"required,min=0"`
}

type UpdateTripRequest struct {
	DepartureAt  *time.Time `json:"departure_at"`
	PricePerSeat *float64   `json:"price_per_seat" binding:"omitempty,min=0"`
	Status       *string    `json:"status" binding:"omitempty,oneof=SCHEDULED DEPARTED COMPLETED CANCELLED"`
}

type TripListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	RouteID  string `form:"route_id" binding:"omitempty,uuid"`
	BusID    string `form:"bus_id" binding:"omitempty,uuid"`
	Date     string `form:"date"` // YYYY-MM-DD
	Status   string `form:"status" binding:"omitempty,oneof=SCHEDULED DEPARTED COMPLETED CANCELLED"`
	Upcoming bool   `form:"upcoming"`
}

type TripResponse struct {
	ID             uuid.UUID            `json:"id"`
	BusID          uuid.UUID            `json:"bus_id"`
	RouteID        uuid.UUID            `json:"route_id"`
	DepartureAt    time.Time            `json:"departure_at"`
	PricePerSeat   float64              `json:"price_per_seat"`
	Status         TripStatus           `json:"status"`
	TotalSeats     int                  `json:"total_seats"`
	BookedCount    int                  `json:"booked_count"`
	AvailableSeats int                  `json:"available_seats"`
	Bus            *fleet.BusResponse   `json:"bus,omitempty"`
	Route          *routes.RouteResponse `json:"route,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type PaginatedTrips struct {
	Trips      []TripResponse `json:"trips"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// SeatMapResponse is the live seat map for a trip, built from confirmed
// bookings.
type SeatMapResponse struct {
	TripID           uuid.UUID     `json:"trip_id"`
	TotalSeats       int           `json:"total_seats"`
	OccupiedSeats    int           `json:"occupied_seats"`
	OccupancyRatio   float64       `json:"occupancy_ratio"`
	PairingMandatory bool          `json:"pairing_mandatory"`
	PricePerSeat     float64       `json:"price_per_seat"`
	Seats            []seatmap.Seat `json:"seats"`
}

// ToggleSeatRequest applies one seat tap to an in-progress selection.
type ToggleSeatRequest struct {
	SeatNumber int   `json:"seat_number" binding:"required,min=1"`
	Selection  []int `json:"selection"`
}

type ToggleSeatResponse struct {
	TripID           uuid.UUID `json:"trip_id"`
	Selection        []int     `json:"selection"`
	TotalAmount      float64   `json:"total_amount"`
	PairingMandatory bool      `json:"pairing_mandatory"`
}

// BookingView carries the trip fields the bookings module needs to finalize
// a booking.
type BookingView struct {
	ID           uuid.UUID
	TotalSeats   int
	PricePerSeat float64
	Status       TripStatus
	DepartureAt  time.Time
	BookedCount  int
}

func (t *Trip) ToResponse() TripResponse {
	resp := TripResponse{
		ID:           t.ID,
		BusID:        t.BusID,
		RouteID:      t.RouteID,
		DepartureAt:  t.DepartureAt,
		PricePerSeat: t.PricePerSeat,
		Status:       t.Status,
		BookedCount:  t.BookedCount,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}

	if t.Bus != nil {
		busResp := t.Bus.ToResponse()
		resp.Bus = &busResp
		resp.TotalSeats = t.Bus.TotalSeats
		resp.AvailableSeats = t.Bus.TotalSeats - t.BookedCount
		if resp.AvailableSeats < 0 {
			resp.AvailableSeats = 0
		}
	}

	if t.Route != nil {
		routeResp := t.Route.ToResponse()
		resp.Route = &routeResp
	}

	return resp
}

// TableName specifies the table name for GORM
func (Trip) TableName() string {
	return "trips"
}
