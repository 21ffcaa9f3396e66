package seatmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLayoutCanonicalNumbering(t *testing.T) {
	layout, err := BuildLayout(36)
	require.NoError(t, err)
	require.Equal(t, 36, layout.TotalSeats())

	lowerPairs := [][2]int{{1, 2}, {5, 6}, {9, 10}, {13, 14}, {17, 18}, {21, 22}}
	upperPairs := [][2]int{{3, 4}, {7, 8}, {11, 12}, {15, 16}, {19, 20}, {23, 24}}

	for row, p := range lowerPairs {
		a, err := layout.Seat(p[0])
		require.NoError(t, err)
		b, err := layout.Seat(p[1])
		require.NoError(t, err)
		assert.Equal(t, DeckLower, a.Deck)
		assert.Equal(t, DeckLower, b.Deck)
		assert.Equal(t, row+1, a.Row)
		assert.Equal(t, row+1, b.Row)
		assert.Equal(t, BerthDouble, a.Berth)
		assert.Equal(t, SideRight, a.Side)
		assert.Equal(t, b.Number, a.PairSeatNumber)
		assert.Equal(t, a.Number, b.PairSeatNumber)
	}

	for row, p := range upperPairs {
		a, err := layout.Seat(p[0])
		require.NoError(t, err)
		assert.Equal(t, DeckUpper, a.Deck)
		assert.Equal(t, row+1, a.Row)
		assert.Equal(t, p[1], a.PairSeatNumber)
	}

	for n := 25; n <= 30; n++ {
		s, err := layout.Seat(n)
		require.NoError(t, err)
		assert.Equal(t, DeckLower, s.Deck)
		assert.Equal(t, BerthSingle, s.Berth)
		assert.Equal(t, SideLeft, s.Side)
		assert.Equal(t, n-24, s.Row)
		assert.Zero(t, s.PairSeatNumber)
	}
	for n := 31; n <= 36; n++ {
		s, err := layout.Seat(n)
		require.NoError(t, err)
		assert.Equal(t, DeckUpper, s.Deck)
		assert.Equal(t, BerthSingle, s.Berth)
	}
}

func TestBuildLayoutUniqueNumbersAndSymmetricPairs(t *testing.T) {
	for _, total := range []int{12, 24, 36, 48} {
		layout, err := BuildLayout(total)
		require.NoError(t, err)
		require.Equal(t, total, layout.TotalSeats())

		seen := make(map[int]bool)
		for _, s := range layout.Seats() {
			assert.False(t, seen[s.Number], "duplicate seat number %d", s.Number)
			seen[s.Number] = true
			assert.GreaterOrEqual(t, s.Number, 1)
			assert.LessOrEqual(t, s.Number, total)

			if s.Berth == BerthDouble {
				pair, err := layout.Seat(s.PairSeatNumber)
				require.NoError(t, err)
				assert.Equal(t, s.Number, pair.PairSeatNumber, "pairing must be symmetric")
				assert.Equal(t, s.Deck, pair.Deck, "pairs never cross decks")
				assert.Equal(t, s.Row, pair.Row, "pairs never cross rows")
			} else {
				assert.Zero(t, s.PairSeatNumber)
			}
		}
	}
}

func TestBuildLayoutRejectsInvalidSeatCounts(t *testing.T) {
	for _, total := range []int{-6, 0, 5, 35, 37, 40} {
		_, err := BuildLayout(total)
		assert.ErrorIs(t, err, ErrInvalidSeatCount, "totalSeats=%d", total)
	}
}

func TestSeatNotFound(t *testing.T) {
	layout, err := BuildLayout(36)
	require.NoError(t, err)

	_, err = layout.Seat(37)
	assert.ErrorIs(t, err, ErrSeatNotFound)
	_, err = layout.Seat(0)
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestOccupancyRatio(t *testing.T) {
	layout, err := BuildLayout(36)
	require.NoError(t, err)
	assert.Zero(t, layout.OccupancyRatio())

	require.NoError(t, layout.Occupy([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, false))
	assert.InDelta(t, 10.0/36.0, layout.OccupancyRatio(), 1e-9)
	assert.Equal(t, 10, layout.OccupiedSeats())
}

func TestOccupyUnknownSeatMutatesNothing(t *testing.T) {
	layout, err := BuildLayout(36)
	require.NoError(t, err)

	err = layout.Occupy([]int{1, 2, 99}, false)
	assert.ErrorIs(t, err, ErrSeatNotFound)
	assert.Zero(t, layout.OccupiedSeats())
}

func TestBuildDemoLayoutIsReproducible(t *testing.T) {
	a, err := BuildDemoLayout(36, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := BuildDemoLayout(36, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, a.Seats(), b.Seats())
}
