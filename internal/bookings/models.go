package bookings

import (
	"time"

	"busexpress/internal/seatmap"

	"github.com/google/uuid"
)

// Booking is one ticket sale covering one or more seats on a trip.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingRef string    `gorm:"unique;not null" json:"booking_ref"`
	TripID     uuid.UUID `gorm:"type:uuid;index;not null" json:"trip_id"`
	AgentID    uuid.UUID `gorm:"type:uuid;index;not null" json:"agent_id"`

	CustomerName   string `gorm:"not null;size:255" json:"customer_name"`
	CustomerPhone  string `gorm:"not null;size:20" json:"customer_phone"`
	CustomerEmail  string `gorm:"size:255" json:"customer_email"`
	CustomerGender string `gorm:"type:varchar(10);not null" json:"customer_gender"`

	TotalSeats  int     `gorm:"not null" json:"total_seats"`
	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	Status      Status  `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Seats []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// BookingSeat is one seat within a booking. TripID and Status are
// denormalized so confirmed occupancy can be read and uniquely indexed
// without joining bookings.
type BookingSeat struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID  uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	TripID     uuid.UUID `gorm:"type:uuid;not null" json:"trip_id"`
	SeatNumber int       `gorm:"not null" json:"seat_number"`
	Price      float64   `gorm:"not null" json:"price"`
	Status     Status    `gorm:"type:varchar(20);default:'CONFIRMED'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingSeat
func (BookingSeat) TableName() string {
	return "booking_seats"
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Customer converts the booking's stored customer fields back into the
// seat map finalizer's customer value.
func (b *Booking) Customer() seatmap.Customer {
	return seatmap.Customer{
		Name:   b.CustomerName,
		Phone:  b.CustomerPhone,
		Email:  b.CustomerEmail,
		Gender: b.CustomerGender,
	}
}

// CustomerInput is the customer details submitted with a booking.
type CustomerInput struct {
	Name   string `json:"name" binding:"required,min=2,max=255"`
	Phone  string `json:"phone" binding:"required,min=10,max=15"`
	Email  string `json:"email" binding:"omitempty,email"`
	Gender string `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
}

// ConfirmBookingRequest finalizes a seat selection into a booking.
type ConfirmBookingRequest struct {
	TripID      string        `json:"trip_id" binding:"required,uuid"`
	SeatNumbers []int         `json:"seat_numbers" binding:"required,min=1"`
	HoldID      string        `json:"hold_id"`
	Customer    CustomerInput `json:"customer" binding:"required"`
}

// HoldSeatsRequest reserves seats in Redis while the agent collects
// customer details.
type HoldSeatsRequest struct {
	TripID      string `json:"trip_id" binding:"required,uuid"`
	SeatNumbers []int  `json:"seat_numbers" binding:"required,min=1"`
}

type HoldSeatsResponse struct {
	HoldID      string    `json:"hold_id"`
	TripID      string    `json:"trip_id"`
	SeatNumbers []int     `json:"seat_numbers"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type BookingListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	TripID   string `form:"trip_id" binding:"omitempty,uuid"`
	AgentID  string `form:"agent_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

type BookingResponse struct {
	ID             string     `json:"id"`
	BookingRef     string     `json:"booking_ref"`
	TripID         string     `json:"trip_id"`
	AgentID        string     `json:"agent_id"`
	CustomerName   string     `json:"customer_name"`
	CustomerPhone  string     `json:"customer_phone"`
	CustomerEmail  string     `json:"customer_email"`
	CustomerGender string     `json:"customer_gender"`
	SeatNumbers    []int      `json:"seat_numbers"`
	TotalSeats     int        `json:"total_seats"`
	TotalAmount    float64    `json:"total_amount"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func (b *Booking) ToResponse() BookingResponse {
	seatNumbers := make([]int, 0, len(b.Seats))
	for _, seat := range b.Seats {
		seatNumbers = append(seatNumbers, seat.SeatNumber)
	}

	return BookingResponse{
		ID:             b.ID.String(),
		BookingRef:     b.BookingRef,
		TripID:         b.TripID.String(),
		AgentID:        b.AgentID.String(),
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		CustomerEmail:  b.CustomerEmail,
		CustomerGender: b.CustomerGender,
		SeatNumbers:    seatNumbers,
		TotalSeats:     b.TotalSeats,
		TotalAmount:    b.TotalAmount,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
		CancelledAt:    b.CancelledAt,
	}
}
