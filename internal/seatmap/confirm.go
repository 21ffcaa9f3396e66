package seatmap

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Customer carries the contact details collected during the booking flow.
type Customer struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// IsFemale reports whether the occupied seats should carry the female flag.
func (c Customer) IsFemale() bool {
	return strings.EqualFold(c.Gender, "female")
}

// Ticket is the immutable outcome of a confirmed selection. It is the
// payload shape handed to the bookings service for persistence.
type Ticket struct {
	Reference   string    `json:"reference"`
	SeatNumbers []int     `json:"seat_numbers"`
	Customer    Customer  `json:"customer"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// Confirm finalizes a selection: every selected seat becomes occupied (with
// the female flag applied uniformly from the customer's gender), the amount
// is pricePerSeat times the seat count, and an immutable Ticket with a fresh
// reference is returned.
//
// The layout must be exclusively owned by the calling booking session;
// authoritative contention between concurrent sessions is arbitrated by the
// bookings service, which re-runs this policy inside a DB transaction.
func Confirm(layout *Layout, selection Selection, customer Customer, pricePerSeat float64) (*Ticket, error) {
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}
	if strings.TrimSpace(customer.Name) == "" || strings.TrimSpace(customer.Phone) == "" {
		return nil, ErrMissingCustomerDetails
	}

	numbers := selection.Numbers()
	for _, n := range numbers {
		seat, err := layout.Seat(n)
		if err != nil {
			return nil, err
		}
		if seat.Occupied {
			return nil, ErrSeatOccupied
		}
	}

	if err := layout.Occupy(numbers, customer.IsFemale()); err != nil {
		return nil, err
	}

	ref, err := NewTicketReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket reference: %w", err)
	}

	return &Ticket{
		Reference:   ref,
		SeatNumbers: numbers,
		Customer:    customer,
		Amount:      pricePerSeat * float64(len(numbers)),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// NewTicketReference generates a booking reference of the form
// BUS-20250101-ABCDEF.
func NewTicketReference() (string, error) {
	timestamp := time.Now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)
	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("BUS-%s-%s", timestamp, string(randomPart)), nil
}
