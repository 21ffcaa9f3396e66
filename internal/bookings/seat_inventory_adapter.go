package bookings

import (
	"context"
	"strings"

	"busexpress/internal/trips"

	"github.com/google/uuid"
)

// SeatInventoryAdapter exposes confirmed seat occupancy to the trips module.
// Wired at startup so trips can hydrate seat maps without importing bookings.
type SeatInventoryAdapter struct {
	repo Repository
}

func NewSeatInventoryAdapter(repo Repository) *SeatInventoryAdapter {
	return &SeatInventoryAdapter{repo: repo}
}

func (a *SeatInventoryAdapter) ConfirmedSeats(ctx context.Context, tripID uuid.UUID) ([]trips.OccupiedSeat, error) {
	seats, err := a.repo.ConfirmedSeats(ctx, tripID)
	if err != nil {
		return nil, err
	}

	occupied := make([]trips.OccupiedSeat, 0, len(seats))
	for _, seat := range seats {
		occupied = append(occupied, trips.OccupiedSeat{
			SeatNumber: seat.SeatNumber,
			Female:     strings.EqualFold(seat.CustomerGender, "FEMALE"),
		})
	}
	return occupied, nil
}
