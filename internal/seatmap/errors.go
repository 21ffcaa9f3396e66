package seatmap

import "errors"

var (
	// ErrInvalidSeatCount is returned when a layout cannot be generated for
	// the requested seat count (must be a positive multiple of six so every
	// row is a full triple).
	ErrInvalidSeatCount = errors.New("seat count must be a positive multiple of six")

	// ErrSeatNotFound is returned when a seat number does not exist in the layout.
	ErrSeatNotFound = errors.New("seat not found in layout")

	// ErrSeatOccupied is returned when a toggle targets an already occupied
	// seat. Callers surface this to the user instead of silently ignoring it.
	ErrSeatOccupied = errors.New("seat is already occupied")

	// ErrPairUnavailable is returned when mandatory pairing is in effect and
	// the partner of the requested double-berth seat is occupied.
	ErrPairUnavailable = errors.New("both seats in this pair must be available")

	ErrEmptySelection         = errors.New("no seats selected")
	ErrMissingCustomerDetails = errors.New("customer name and phone are required")
)
