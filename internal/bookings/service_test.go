package bookings

import (
	"context"
	"testing"
	"time"

	"busexpress/internal/notifications"
	"busexpress/internal/seatmap"
	"busexpress/internal/trips"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTripService serves a fixed layout and booking view.
type fakeTripService struct {
	layout *seatmap.Layout
	view   trips.BookingView
	trip   trips.TripResponse
}

func (f *fakeTripService) BuildLayout(ctx context.Context, id uuid.UUID) (*seatmap.Layout, *trips.BookingView, error) {
	view := f.view
	return f.layout, &view, nil
}

func (f *fakeTripService) GetTripByID(id uuid.UUID) (*trips.TripResponse, error) {
	trip := f.trip
	return &trip, nil
}

// fakeRepository keeps bookings in memory.
type fakeRepository struct {
	created   []*Booking
	byRef     map[string]*Booking
	cancelled []uuid.UUID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byRef: make(map[string]*Booking)}
}

func (f *fakeRepository) CreateBookingWithTripUpdate(ctx context.Context, booking *Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	f.created = append(f.created, booking)
	f.byRef[booking.BookingRef] = booking
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	for _, b := range f.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeRepository) GetByRef(ctx context.Context, bookingRef string) (*Booking, error) {
	b, ok := f.byRef[bookingRef]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	f.cancelled = append(f.cancelled, id)
	for _, b := range f.created {
		if b.ID == id {
			now := time.Now()
			b.Status = StatusCancelled
			b.CancelledAt = &now
			for i := range b.Seats {
				b.Seats[i].Status = StatusCancelled
			}
		}
	}
	return nil
}

func (f *fakeRepository) GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	out := make([]Booking, 0, len(f.created))
	for _, b := range f.created {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) ConfirmedSeats(ctx context.Context, tripID uuid.UUID) ([]ConfirmedSeat, error) {
	var seats []ConfirmedSeat
	for _, b := range f.created {
		if b.TripID != tripID || b.Status != StatusConfirmed {
			continue
		}
		for _, s := range b.Seats {
			seats = append(seats, ConfirmedSeat{SeatNumber: s.SeatNumber, CustomerGender: b.CustomerGender})
		}
	}
	return seats, nil
}

func newBookingService(t *testing.T, occupied []int) (Service, *fakeRepository, *fakeTripService) {
	t.Helper()

	layout, err := seatmap.BuildLayout(36)
	require.NoError(t, err)
	if len(occupied) > 0 {
		require.NoError(t, layout.Occupy(occupied, false))
	}

	tripID := uuid.New()
	tripSvc := &fakeTripService{
		layout: layout,
		view: trips.BookingView{
			ID:           tripID,
			TotalSeats:   36,
			PricePerSeat: 850,
			Status:       trips.TripStatusScheduled,
			DepartureAt:  time.Now().Add(48 * time.Hour),
			BookedCount:  len(occupied),
		},
		trip: trips.TripResponse{
			ID:          tripID,
			DepartureAt: time.Now().Add(48 * time.Hour),
		},
	}
	repo := newFakeRepository()
	svc := NewService(repo, tripSvc, nil, notifications.NoopPublisher{}, 6)
	return svc, repo, tripSvc
}

func validCustomer() CustomerInput {
	return CustomerInput{Name: "Asha Patil", Phone: "9900011001", Gender: "FEMALE"}
}

func TestConfirmBookingBooksDoubleBerthPair(t *testing.T) {
	svc, repo, tripSvc := newBookingService(t, nil)

	resp, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{1, 2},
		Customer:    validCustomer(),
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, resp.SeatNumbers)
	assert.Equal(t, 1700.0, resp.TotalAmount)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.NotEmpty(t, resp.BookingRef)

	require.Len(t, repo.created, 1)
	require.Len(t, repo.created[0].Seats, 2)
	assert.Equal(t, 850.0, repo.created[0].Seats[0].Price)
}

func TestConfirmBookingRejectsLonePairSeatBelowThreshold(t *testing.T) {
	svc, repo, tripSvc := newBookingService(t, nil)

	// Toggling seat 1 pulls in its partner, so requesting only seat 1
	// cannot match the policy outcome while the coach is mostly empty.
	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{1},
		Customer:    validCustomer(),
	})
	assert.ErrorIs(t, err, ErrSelectionRejected)
	assert.Empty(t, repo.created)
}

func TestConfirmBookingAcceptsLonePairSeatAboveThreshold(t *testing.T) {
	// 26 of 36 seats occupied puts occupancy past the pairing threshold,
	// so single seats from double berths become bookable alone.
	occupied := make([]int, 0, 26)
	for n := 5; n <= 30; n++ {
		occupied = append(occupied, n)
	}
	svc, repo, tripSvc := newBookingService(t, occupied)

	resp, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{1},
		Customer:    validCustomer(),
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, resp.SeatNumbers)
	assert.Equal(t, 850.0, resp.TotalAmount)
	require.Len(t, repo.created, 1)
}

func TestConfirmBookingRejectsOccupiedSeat(t *testing.T) {
	svc, _, tripSvc := newBookingService(t, []int{1, 2})

	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{1, 2},
		Customer:    validCustomer(),
	})
	assert.ErrorIs(t, err, seatmap.ErrSeatOccupied)
}

func TestConfirmBookingRejectsDuplicateSeatNumbers(t *testing.T) {
	svc, _, tripSvc := newBookingService(t, nil)

	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{25, 25},
		Customer:    validCustomer(),
	})
	assert.ErrorIs(t, err, ErrSelectionRejected)
}

func TestConfirmBookingEnforcesSeatLimit(t *testing.T) {
	svc, _, tripSvc := newBookingService(t, nil)

	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{1, 2, 3, 4, 5, 6, 25},
		Customer:    validCustomer(),
	})
	assert.ErrorIs(t, err, ErrTooManySeats)
}

func TestConfirmBookingRejectsClosedTrip(t *testing.T) {
	svc, _, tripSvc := newBookingService(t, nil)
	tripSvc.view.Status = trips.TripStatusCancelled

	_, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{25},
		Customer:    validCustomer(),
	})
	assert.ErrorIs(t, err, ErrTripNotOpen)
}

func TestHoldSeatsValidatesAgainstSeatMap(t *testing.T) {
	svc, _, tripSvc := newBookingService(t, []int{25})

	_, err := svc.HoldSeats(context.Background(), uuid.New(), HoldSeatsRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{25},
	})
	assert.ErrorIs(t, err, seatmap.ErrSeatOccupied)
}

func TestCancelBookingFreesSeatsOnce(t *testing.T) {
	svc, repo, tripSvc := newBookingService(t, nil)

	resp, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{1, 2},
		Customer:    validCustomer(),
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(context.Background(), resp.BookingRef)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	require.Len(t, repo.cancelled, 1)

	_, err = svc.CancelBooking(context.Background(), resp.BookingRef)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBookingRejectsDepartedTrip(t *testing.T) {
	svc, _, tripSvc := newBookingService(t, nil)

	resp, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{1, 2},
		Customer:    validCustomer(),
	})
	require.NoError(t, err)

	tripSvc.trip.DepartureAt = time.Now().Add(-2 * time.Hour)

	_, err = svc.CancelBooking(context.Background(), resp.BookingRef)
	assert.ErrorIs(t, err, ErrDepartedTrip)
}

func TestGenerateTicketForConfirmedBooking(t *testing.T) {
	svc, _, tripSvc := newBookingService(t, nil)

	resp, err := svc.ConfirmBooking(context.Background(), uuid.New(), ConfirmBookingRequest{
		TripID:      tripSvc.view.ID.String(),
		SeatNumbers: []int{1, 2},
		Customer:    validCustomer(),
	})
	require.NoError(t, err)

	pdf, filename, err := svc.GenerateTicket(context.Background(), resp.BookingRef)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "TICKET_"+resp.BookingRef+".pdf", filename)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
