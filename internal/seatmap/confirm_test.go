package seatmap

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmEmptySelection(t *testing.T) {
	layout, err := BuildLayout(36)
	require.NoError(t, err)

	_, err = Confirm(layout, NewSelection(), Customer{Name: "Asha", Phone: "9876543210"}, 45)
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Zero(t, layout.OccupiedSeats(), "failed confirm must not mutate the layout")
}

func TestConfirmMissingCustomerDetails(t *testing.T) {
	layout, err := BuildLayout(36)
	require.NoError(t, err)

	sel, err := Toggle(layout, NewSelection(), 1)
	require.NoError(t, err)

	for _, customer := range []Customer{
		{Name: "", Phone: "9876543210"},
		{Name: "Asha", Phone: ""},
		{Name: "   ", Phone: "   "},
	} {
		_, err := Confirm(layout, sel, customer, 45)
		assert.ErrorIs(t, err, ErrMissingCustomerDetails)
	}
	assert.Zero(t, layout.OccupiedSeats())
}

func TestConfirmBooksPairAndComputesAmount(t *testing.T) {
	layout, err := BuildLayout(36)
	require.NoError(t, err)

	sel, err := Toggle(layout, NewSelection(), 1)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, sel.Numbers())

	ticket, err := Confirm(layout, sel, Customer{Name: "Asha", Phone: "9876543210", Gender: "female"}, 45)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, ticket.SeatNumbers)
	assert.Equal(t, 90.0, ticket.Amount)
	assert.Regexp(t, regexp.MustCompile(`^BUS-\d{8}-[A-Z]{6}$`), ticket.Reference)

	for _, n := range []int{1, 2} {
		seat, err := layout.Seat(n)
		require.NoError(t, err)
		assert.True(t, seat.Occupied)
		assert.True(t, seat.OccupiedByFemale)
	}
	assert.InDelta(t, 2.0/36.0, layout.OccupancyRatio(), 1e-9)
}

func TestConfirmRejectsOccupiedSeat(t *testing.T) {
	layout, err := BuildLayout(36)
	require.NoError(t, err)

	sel, err := Toggle(layout, NewSelection(), 1)
	require.NoError(t, err)

	// Another session commits the same pair first.
	require.NoError(t, layout.Occupy([]int{1, 2}, false))

	_, err = Confirm(layout, sel, Customer{Name: "Asha", Phone: "9876543210"}, 45)
	assert.ErrorIs(t, err, ErrSeatOccupied)
}

func TestConfirmMaleBookingLeavesFemaleFlagUnset(t *testing.T) {
	layout, err := BuildLayout(36)
	require.NoError(t, err)

	sel, err := Toggle(layout, NewSelection(), 25)
	require.NoError(t, err)

	ticket, err := Confirm(layout, sel, Customer{Name: "Ravi", Phone: "9000000000", Gender: "male"}, 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, ticket.Amount)

	seat, err := layout.Seat(25)
	require.NoError(t, err)
	assert.True(t, seat.Occupied)
	assert.False(t, seat.OccupiedByFemale)
}
