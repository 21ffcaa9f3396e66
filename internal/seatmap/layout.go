// Package seatmap models a sleeper-bus seat layout and the selection policy
// applied during booking. It is pure in-memory state: persistence and
// transport live in the trips and bookings packages.
package seatmap

import (
	"math/rand"
	"sort"
)

// Side tells which side of the aisle a seat sits on. Left seats are always
// singles, right seats always belong to a pair.
type Side string

const (
	SideLeft  Side = "LEFT"
	SideRight Side = "RIGHT"
)

// Berth is the seat category: independent single or linked double.
type Berth string

const (
	BerthSingle Berth = "SINGLE"
	BerthDouble Berth = "DOUBLE"
)

// Deck is the logical half of the bus the seat belongs to.
type Deck string

const (
	DeckLower Deck = "LOWER"
	DeckUpper Deck = "UPPER"
)

// SeatsPerRow is fixed by the coach design: one left single plus one
// right-side pair per row, on each of the two decks.
const SeatsPerRow = 3

// Seat is one berth in a bus layout. PairSeatNumber is zero for singles and
// references the partner seat for doubles; pairing is symmetric and never
// crosses decks or rows.
type Seat struct {
	Number           int   `json:"number"`
	Side             Side  `json:"side"`
	Berth            Berth `json:"berth"`
	Deck             Deck  `json:"deck"`
	Row              int   `json:"row"`
	PairSeatNumber   int   `json:"pair_seat_number,omitempty"`
	Occupied         bool  `json:"occupied"`
	OccupiedByFemale bool  `json:"occupied_by_female"`
}

// Layout is the full seat map for one bus/trip. Seat numbers are unique
// across both decks. A layout instance is owned by a single booking session
// and is not safe for concurrent mutation.
type Layout struct {
	seats []Seat
	index map[int]int
}

// BuildLayout deterministically generates the two-deck layout for the given
// seat count with every seat unoccupied. Rows per deck = totalSeats / 6.
//
// Numbering for R rows per deck: the lower-deck pair in row r is
// (4(r-1)+1, 4(r-1)+2) and the upper-deck pair is (4(r-1)+3, 4(r-1)+4);
// lower singles are 4R+1..5R and upper singles 5R+1..6R. For the canonical
// 36-seat coach that yields lower pairs (1,2),(5,6)..(21,22), upper pairs
// (3,4),(7,8)..(23,24) and singles 25-30 (lower) / 31-36 (upper).
func BuildLayout(totalSeats int) (*Layout, error) {
	if totalSeats <= 0 || totalSeats%(2*SeatsPerRow) != 0 {
		return nil, ErrInvalidSeatCount
	}

	rowsPerDeck := totalSeats / (2 * SeatsPerRow)
	seats := make([]Seat, 0, totalSeats)

	for _, deck := range []Deck{DeckLower, DeckUpper} {
		pairOffset := 0
		if deck == DeckUpper {
			pairOffset = 2
		}
		for row := 1; row <= rowsPerDeck; row++ {
			first := 4*(row-1) + pairOffset + 1
			seats = append(seats,
				Seat{Number: first, Side: SideRight, Berth: BerthDouble, Deck: deck, Row: row, PairSeatNumber: first + 1},
				Seat{Number: first + 1, Side: SideRight, Berth: BerthDouble, Deck: deck, Row: row, PairSeatNumber: first},
			)
		}
		singleBase := 4 * rowsPerDeck
		if deck == DeckUpper {
			singleBase = 5 * rowsPerDeck
		}
		for row := 1; row <= rowsPerDeck; row++ {
			seats = append(seats, Seat{Number: singleBase + row, Side: SideLeft, Berth: BerthSingle, Deck: deck, Row: row})
		}
	}

	index := make(map[int]int, len(seats))
	for i, s := range seats {
		index[s.Number] = i
	}

	return &Layout{seats: seats, index: index}, nil
}

// BuildDemoLayout generates a layout with occupancy drawn at random, for
// seeding and demos only. Production layouts must be hydrated from confirmed
// bookings via Occupy.
func BuildDemoLayout(totalSeats int, rng *rand.Rand) (*Layout, error) {
	layout, err := BuildLayout(totalSeats)
	if err != nil {
		return nil, err
	}
	for i := range layout.seats {
		if rng.Intn(100) < 35 {
			layout.seats[i].Occupied = true
			layout.seats[i].OccupiedByFemale = rng.Intn(2) == 0
		}
	}
	return layout, nil
}

// Seat returns the seat with the given number.
func (l *Layout) Seat(number int) (*Seat, error) {
	i, ok := l.index[number]
	if !ok {
		return nil, ErrSeatNotFound
	}
	return &l.seats[i], nil
}

// Seats returns all seats ordered by seat number.
func (l *Layout) Seats() []Seat {
	out := make([]Seat, len(l.seats))
	copy(out, l.seats)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// TotalSeats returns the number of seats in the layout.
func (l *Layout) TotalSeats() int {
	return len(l.seats)
}

// OccupiedSeats returns how many seats are currently occupied.
func (l *Layout) OccupiedSeats() int {
	n := 0
	for _, s := range l.seats {
		if s.Occupied {
			n++
		}
	}
	return n
}

// OccupancyRatio is the fraction of all seats marked occupied, in [0,1].
// In-progress selections never influence the ratio; it moves only when a
// booking commits.
func (l *Layout) OccupancyRatio() float64 {
	if len(l.seats) == 0 {
		return 0
	}
	return float64(l.OccupiedSeats()) / float64(len(l.seats))
}

// Occupy hydrates authoritative occupancy onto the layout, e.g. from the
// confirmed bookings of a trip. Unknown seat numbers are reported via
// ErrSeatNotFound and nothing is mutated in that case.
func (l *Layout) Occupy(seatNumbers []int, female bool) error {
	for _, n := range seatNumbers {
		if _, ok := l.index[n]; !ok {
			return ErrSeatNotFound
		}
	}
	for _, n := range seatNumbers {
		s := &l.seats[l.index[n]]
		s.Occupied = true
		s.OccupiedByFemale = female
	}
	return nil
}
