package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// layoutWithOccupied builds a 36-seat layout with the given seats occupied.
func layoutWithOccupied(t *testing.T, seatNumbers []int) *Layout {
	t.Helper()
	layout, err := BuildLayout(36)
	require.NoError(t, err)
	require.NoError(t, layout.Occupy(seatNumbers, false))
	return layout
}

// firstN returns seat numbers 1..n.
func firstN(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestToggleSingleSeatIndependentOfRatio(t *testing.T) {
	// 26/36 occupied puts the bus above the pairing threshold; singles
	// behave the same on either side of it.
	for _, occupied := range [][]int{firstN(10), firstN(26)} {
		layout := layoutWithOccupied(t, occupied)

		sel, err := Toggle(layout, NewSelection(), 30)
		require.NoError(t, err)
		assert.Equal(t, []int{30}, sel.Numbers(), "single toggles alone")

		sel, err = Toggle(layout, sel, 30)
		require.NoError(t, err)
		assert.Empty(t, sel.Numbers(), "toggling twice returns to the original state")
	}
}

func TestTogglePairMandatoryBelowThreshold(t *testing.T) {
	layout := layoutWithOccupied(t, []int{25, 26, 27, 28, 29, 30, 31, 32, 33, 34})
	require.Less(t, layout.OccupancyRatio(), PairingThreshold)

	sel, err := Toggle(layout, NewSelection(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, sel.Numbers(), "pair selects together")

	sel, err = Toggle(layout, sel, 1)
	require.NoError(t, err)
	assert.Empty(t, sel.Numbers(), "pair deselects together")
}

func TestTogglePairDeselectsViaEitherMember(t *testing.T) {
	layout := layoutWithOccupied(t, []int{25, 26})

	sel, err := Toggle(layout, NewSelection(), 5)
	require.NoError(t, err)
	require.Equal(t, []int{5, 6}, sel.Numbers())

	sel, err = Toggle(layout, sel, 6)
	require.NoError(t, err)
	assert.Empty(t, sel.Numbers())
}

func TestTogglePairPartnerOccupiedBelowThreshold(t *testing.T) {
	layout := layoutWithOccupied(t, []int{6})

	sel, err := Toggle(layout, NewSelection(), 5)
	assert.ErrorIs(t, err, ErrPairUnavailable)
	assert.Empty(t, sel.Numbers(), "no partial pair selection")
}

func TestTogglePairOptionalAtOrAboveThreshold(t *testing.T) {
	// 26/36 ≈ 0.72: doubles 1..22 plus singles 25..28 occupied, leaving
	// the pair (23,24) free.
	occupied := firstN(22)
	occupied = append(occupied, 25, 26, 27, 28)
	layout := layoutWithOccupied(t, occupied)
	require.GreaterOrEqual(t, layout.OccupancyRatio(), PairingThreshold)

	sel, err := Toggle(layout, NewSelection(), 23)
	require.NoError(t, err)
	assert.Equal(t, []int{23}, sel.Numbers(), "pair link ignored above threshold")
	assert.False(t, sel.Contains(24))
}

func TestToggleExactThresholdUsesOptionalBranch(t *testing.T) {
	// A 30-seat layout hits exactly 0.70 at 21 occupied seats. Occupy
	// 5..25 so the lower pair (1,2) stays free for the click.
	layout, err := BuildLayout(30)
	require.NoError(t, err)
	occupied := make([]int, 0, 21)
	for n := 5; n <= 25; n++ {
		occupied = append(occupied, n)
	}
	require.NoError(t, layout.Occupy(occupied, false))
	require.InDelta(t, PairingThreshold, layout.OccupancyRatio(), 1e-9)

	sel, err := Toggle(layout, NewSelection(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sel.Numbers(), "ratio == 0.70 means pairing is optional")
}

func TestToggleOccupiedSeatIsBlocked(t *testing.T) {
	layout := layoutWithOccupied(t, []int{1, 2})

	sel, err := Toggle(layout, NewSelection(), 1)
	assert.ErrorIs(t, err, ErrSeatOccupied)
	assert.Empty(t, sel.Numbers())
}

func TestToggleUnknownSeat(t *testing.T) {
	layout := layoutWithOccupied(t, nil)

	sel, err := Toggle(layout, NewSelection(), 99)
	assert.ErrorIs(t, err, ErrSeatNotFound)
	assert.Empty(t, sel.Numbers())
}

func TestToggleDoesNotMutateInputSelection(t *testing.T) {
	layout := layoutWithOccupied(t, nil)

	original := NewSelection()
	next, err := Toggle(layout, original, 1)
	require.NoError(t, err)
	assert.Empty(t, original.Numbers())
	assert.Equal(t, []int{1, 2}, next.Numbers())
}

func TestRatioIgnoresSelection(t *testing.T) {
	// 24/36 occupied: doubles 1..20 plus singles 25..28, leaving the pair
	// (21,22) free.
	occupied := firstN(20)
	occupied = append(occupied, 25, 26, 27, 28)
	layout := layoutWithOccupied(t, occupied)
	require.Less(t, layout.OccupancyRatio(), PairingThreshold)

	// Selecting seats must not push the bus across the policy threshold.
	sel := NewSelection()
	var err error
	for _, n := range []int{29, 30, 31} {
		sel, err = Toggle(layout, sel, n)
		require.NoError(t, err)
	}
	assert.InDelta(t, 24.0/36.0, layout.OccupancyRatio(), 1e-9)

	// Still below threshold: the next double click selects its pair too.
	sel, err = Toggle(layout, sel, 21)
	require.NoError(t, err)
	assert.True(t, sel.Contains(21))
	assert.True(t, sel.Contains(22))
}
