package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrTripFull        = errors.New("trip is fully booked")
	ErrTripNotOpen     = errors.New("trip is not open for booking")
)

type Repository interface {
	// CreateBookingWithTripUpdate creates the booking, its seats, and the
	// trip counter bump in one transaction.
	CreateBookingWithTripUpdate(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByRef(ctx context.Context, bookingRef string) (*Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	// ConfirmedSeats returns seat numbers with the booking customer's
	// gender for every CONFIRMED seat on a trip.
	ConfirmedSeats(ctx context.Context, tripID uuid.UUID) ([]ConfirmedSeat, error)
}

// ConfirmedSeat is one occupied seat read back from storage.
type ConfirmedSeat struct {
	SeatNumber     int    `gorm:"column:seat_number"`
	CustomerGender string `gorm:"column:customer_gender"`
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBookingWithTripUpdate(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the trip row so concurrent bookings serialize on the
		// counter and capacity check.
		var trip struct {
			ID          uuid.UUID `gorm:"column:id"`
			Status      string    `gorm:"column:status"`
			BookedCount int       `gorm:"column:booked_count"`
			TotalSeats  int       `gorm:"column:total_seats"`
		}

		err := tx.Table("trips").
			Select("trips.id, trips.status, trips.booked_count, buses.total_seats").
			Joins("JOIN buses ON buses.id = trips.bus_id").
			Where("trips.id = ?", booking.TripID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&trip).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("trip not found")
			}
			return fmt.Errorf("failed to lock trip: %w", err)
		}

		if trip.Status != "SCHEDULED" {
			return ErrTripNotOpen
		}

		newBookedCount := trip.BookedCount + booking.TotalSeats
		if newBookedCount > trip.TotalSeats {
			return ErrTripFull
		}

		// The partial unique index on (trip_id, seat_number) for
		// CONFIRMED rows rejects double-booked seats at this point.
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		err = tx.Table("trips").
			Where("id = ?", booking.TripID).
			Update("booked_count", newBookedCount).Error
		if err != nil {
			return fmt.Errorf("failed to update trip booked count: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByRef(ctx context.Context, bookingRef string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("booking_ref = ?", bookingRef).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// Cancel flips the booking and its seats to CANCELLED and releases the
// trip capacity, all in one transaction. Occupancy is derived from
// CONFIRMED seats, so cancelled seats free up immediately.
func (r *repository) Cancel(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		if err := tx.Where("id = ?", id).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		now := time.Now()
		err := tx.Model(&Booking{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		err = tx.Model(&BookingSeat{}).
			Where("booking_id = ?", id).
			Update("status", StatusCancelled).Error
		if err != nil {
			return fmt.Errorf("failed to release booking seats: %w", err)
		}

		err = tx.Table("trips").
			Where("id = ?", booking.TripID).
			Update("booked_count", gorm.Expr("GREATEST(booked_count - ?, 0)", booking.TotalSeats)).Error
		if err != nil {
			return fmt.Errorf("failed to update trip booked count: %w", err)
		}

		return nil
	})
}

func (r *repository) GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.applyFilters(r.db.WithContext(ctx).Model(&Booking{}), query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Seats").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) ConfirmedSeats(ctx context.Context, tripID uuid.UUID) ([]ConfirmedSeat, error) {
	var seats []ConfirmedSeat
	err := r.db.WithContext(ctx).
		Table("booking_seats").
		Select("booking_seats.seat_number, bookings.customer_gender").
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("booking_seats.trip_id = ? AND booking_seats.status = ?", tripID, StatusConfirmed).
		Scan(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.TripID != "" {
		if tripID, err := uuid.Parse(filters.TripID); err == nil {
			query = query.Where("trip_id = ?", tripID)
		}
	}

	if filters.AgentID != "" {
		if agentID, err := uuid.Parse(filters.AgentID); err == nil {
			query = query.Where("agent_id = ?", agentID)
		}
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("created_at >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			dateTo = dateTo.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where("created_at <= ?", dateTo)
		}
	}

	return query
}

// Helper function to calculate total pages
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
