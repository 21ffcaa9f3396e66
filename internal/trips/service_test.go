package trips

import (
	"context"
	"testing"
	"time"

	"busexpress/internal/fleet"
	"busexpress/internal/seatmap"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTripRepo struct {
	trips map[uuid.UUID]*Trip
}

func newFakeTripRepo(trips ...*Trip) *fakeTripRepo {
	repo := &fakeTripRepo{trips: make(map[uuid.UUID]*Trip)}
	for _, trip := range trips {
		repo.trips[trip.ID] = trip
	}
	return repo
}

func (f *fakeTripRepo) Create(trip *Trip) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	f.trips[trip.ID] = trip
	return nil
}

func (f *fakeTripRepo) GetByID(id uuid.UUID) (*Trip, error) {
	trip, ok := f.trips[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return trip, nil
}

func (f *fakeTripRepo) Update(id uuid.UUID, updates map[string]interface{}) (*Trip, error) {
	return f.GetByID(id)
}

func (f *fakeTripRepo) Delete(id uuid.UUID) error {
	delete(f.trips, id)
	return nil
}

func (f *fakeTripRepo) GetAll(query TripListQuery) ([]Trip, int64, error) {
	out := make([]Trip, 0, len(f.trips))
	for _, trip := range f.trips {
		out = append(out, *trip)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTripRepo) BusScheduledAt(busID uuid.UUID, departureAt time.Time) (bool, error) {
	return false, nil
}

type fakeBusService struct{ seats int }

func (f fakeBusService) GetBusSeatCount(id uuid.UUID) (int, error) { return f.seats, nil }

type fakeRouteService struct{ exists bool }

func (f fakeRouteService) RouteExists(id uuid.UUID) (bool, error) { return f.exists, nil }

type fakeInventory struct{ seats []OccupiedSeat }

func (f fakeInventory) ConfirmedSeats(ctx context.Context, tripID uuid.UUID) ([]OccupiedSeat, error) {
	return f.seats, nil
}

func newTripService(t *testing.T, occupied []OccupiedSeat) (Service, *Trip) {
	t.Helper()

	trip := &Trip{
		ID:           uuid.New(),
		BusID:        uuid.New(),
		RouteID:      uuid.New(),
		DepartureAt:  time.Now().Add(48 * time.Hour),
		PricePerSeat: 850,
		Status:       TripStatusScheduled,
		BookedCount:  len(occupied),
		Bus:          &fleet.Bus{TotalSeats: 36},
	}

	svc := NewService(newFakeTripRepo(trip), fakeBusService{seats: 36}, fakeRouteService{exists: true})
	svc.SetSeatInventory(fakeInventory{seats: occupied})
	return svc, trip
}

func TestGetSeatMapHydratesFromConfirmedSeats(t *testing.T) {
	svc, trip := newTripService(t, []OccupiedSeat{
		{SeatNumber: 1, Female: true},
		{SeatNumber: 2, Female: true},
		{SeatNumber: 25, Female: false},
	})

	seatMap, err := svc.GetSeatMap(context.Background(), trip.ID)
	require.NoError(t, err)

	assert.Equal(t, 36, seatMap.TotalSeats)
	assert.Equal(t, 3, seatMap.OccupiedSeats)
	assert.InDelta(t, 3.0/36.0, seatMap.OccupancyRatio, 1e-9)
	assert.True(t, seatMap.PairingMandatory)
	assert.Equal(t, 850.0, seatMap.PricePerSeat)

	for _, seat := range seatMap.Seats {
		switch seat.Number {
		case 1, 2:
			assert.True(t, seat.Occupied)
			assert.True(t, seat.OccupiedByFemale)
		case 25:
			assert.True(t, seat.Occupied)
			assert.False(t, seat.OccupiedByFemale)
		default:
			assert.False(t, seat.Occupied)
		}
	}
}

func TestGetSeatMapUnknownTrip(t *testing.T) {
	svc, _ := newTripService(t, nil)

	_, err := svc.GetSeatMap(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestToggleSeatPullsInPairPartner(t *testing.T) {
	svc, trip := newTripService(t, nil)

	resp, err := svc.ToggleSeat(context.Background(), trip.ID, ToggleSeatRequest{SeatNumber: 5})
	require.NoError(t, err)

	assert.Equal(t, []int{5, 6}, resp.Selection)
	assert.Equal(t, 1700.0, resp.TotalAmount)
	assert.True(t, resp.PairingMandatory)
}

func TestToggleSeatDeselectsPair(t *testing.T) {
	svc, trip := newTripService(t, nil)

	resp, err := svc.ToggleSeat(context.Background(), trip.ID, ToggleSeatRequest{
		SeatNumber: 5,
		Selection:  []int{5, 6},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Selection)
	assert.Zero(t, resp.TotalAmount)
}

func TestToggleSeatSingleBerthStaysAlone(t *testing.T) {
	svc, trip := newTripService(t, nil)

	resp, err := svc.ToggleSeat(context.Background(), trip.ID, ToggleSeatRequest{SeatNumber: 25})
	require.NoError(t, err)

	assert.Equal(t, []int{25}, resp.Selection)
	assert.Equal(t, 850.0, resp.TotalAmount)
}

func TestToggleSeatAboveThresholdSkipsPairing(t *testing.T) {
	occupied := make([]OccupiedSeat, 0, 26)
	for n := 5; n <= 30; n++ {
		occupied = append(occupied, OccupiedSeat{SeatNumber: n})
	}
	svc, trip := newTripService(t, occupied)

	resp, err := svc.ToggleSeat(context.Background(), trip.ID, ToggleSeatRequest{SeatNumber: 1})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, resp.Selection)
	assert.False(t, resp.PairingMandatory)
}

func TestToggleSeatRejectsOccupiedCarriedSelection(t *testing.T) {
	svc, trip := newTripService(t, []OccupiedSeat{{SeatNumber: 5}, {SeatNumber: 6}})

	_, err := svc.ToggleSeat(context.Background(), trip.ID, ToggleSeatRequest{
		SeatNumber: 1,
		Selection:  []int{5},
	})
	assert.ErrorIs(t, err, seatmap.ErrSeatOccupied)
}

func TestCreateTripRejectsPastDeparture(t *testing.T) {
	svc, trip := newTripService(t, nil)

	_, err := svc.CreateTrip(uuid.New(), CreateTripRequest{
		BusID:        trip.BusID.String(),
		RouteID:      trip.RouteID.String(),
		DepartureAt:  time.Now().Add(-1 * time.Hour),
		PricePerSeat: 850,
	})
	assert.ErrorIs(t, err, ErrDepartureInPast)
}

func TestDeleteTripWithBookingsRefused(t *testing.T) {
	svc, trip := newTripService(t, []OccupiedSeat{{SeatNumber: 25}})

	err := svc.DeleteTrip(trip.ID)
	assert.ErrorIs(t, err, ErrTripHasBookings)
}
