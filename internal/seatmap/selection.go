package seatmap

import "sort"

// PairingThreshold is the occupancy ratio at which double-berth pairing
// switches from mandatory to optional. The comparison is strict: a bus at
// exactly 70% falls into the optional branch.
const PairingThreshold = 0.70

// Selection is the set of seat numbers picked during one booking session.
// Transitions go through Toggle, which returns a new set and leaves the
// input untouched.
type Selection map[int]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return make(Selection)
}

// Contains reports whether the seat number is selected.
func (s Selection) Contains(number int) bool {
	_, ok := s[number]
	return ok
}

// Numbers returns the selected seat numbers in ascending order.
func (s Selection) Numbers() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Toggle applies one seat click to the selection under the pairing policy:
//
//   - Single-berth (left) seats toggle independently, whatever the ratio.
//   - Below PairingThreshold, double-berth (right) seats select and deselect
//     together with their pair. Selecting when the partner is occupied fails
//     with ErrPairUnavailable and the selection is unchanged; partial pairs
//     are never produced.
//   - At or above PairingThreshold the pair link is ignored and the seat
//     toggles alone.
//
// Occupied seats are never toggled; the caller gets ErrSeatOccupied so the
// UI can tell a blocked click apart from a no-op. On any error the returned
// selection equals the input.
func Toggle(layout *Layout, selection Selection, seatNumber int) (Selection, error) {
	seat, err := layout.Seat(seatNumber)
	if err != nil {
		return selection, err
	}
	if seat.Occupied {
		return selection, ErrSeatOccupied
	}

	next := selection.Clone()

	if seat.Berth == BerthSingle {
		next.flip(seat.Number)
		return next, nil
	}

	// Ratio counts committed occupancy only, so the caller's own picks do
	// not move the bus between policy branches mid-session.
	if layout.OccupancyRatio() >= PairingThreshold {
		next.flip(seat.Number)
		return next, nil
	}

	if next.Contains(seat.Number) {
		delete(next, seat.Number)
		delete(next, seat.PairSeatNumber)
		return next, nil
	}

	pair, err := layout.Seat(seat.PairSeatNumber)
	if err != nil {
		return selection, err
	}
	if pair.Occupied {
		return selection, ErrPairUnavailable
	}

	next[seat.Number] = struct{}{}
	next[pair.Number] = struct{}{}
	return next, nil
}

func (s Selection) flip(number int) {
	if s.Contains(number) {
		delete(s, number)
	} else {
		s[number] = struct{}{}
	}
}
