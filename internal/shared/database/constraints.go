package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// A seat number can only be sold once per trip while a booking is
	// CONFIRMED; cancelled bookings release the seat.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_confirmed_seat_per_trip
		ON booking_seats (trip_id, seat_number)
		WHERE status = 'CONFIRMED';
	`).Error
	if err != nil {
		return err
	}

	// Index for seat availability queries during the booking flow
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_seats_trip_id
		ON booking_seats (trip_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for trip searches by route and departure date
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_trips_route_departure
		ON trips (route_id, departure_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
