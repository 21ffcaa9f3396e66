package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"busexpress/internal/notifications"
	"busexpress/internal/seatmap"
	"busexpress/internal/shared/constants"
	"busexpress/internal/trips"
	"busexpress/pkg/cache"
	"busexpress/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrTooManySeats      = errors.New("seat count exceeds per-booking limit")
	ErrSelectionRejected = errors.New("requested seats cannot be selected together")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrDepartedTrip      = errors.New("trip has already departed")
)

// TripService is the subset of the trips module the booking flow depends on.
// Declared locally to avoid widening the import surface.
type TripService interface {
	BuildLayout(ctx context.Context, id uuid.UUID) (*seatmap.Layout, *trips.BookingView, error)
	GetTripByID(id uuid.UUID) (*trips.TripResponse, error)
}

// Service interface defines the contract for booking business logic
type Service interface {
	SetCacheService(cacheService cache.Service)
	HoldSeats(ctx context.Context, agentID uuid.UUID, req HoldSeatsRequest) (*HoldSeatsResponse, error)
	ConfirmBooking(ctx context.Context, agentID uuid.UUID, req ConfirmBookingRequest) (*BookingResponse, error)
	GetBookingByRef(ctx context.Context, bookingRef string) (*BookingResponse, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	CancelBooking(ctx context.Context, bookingRef string) (*BookingResponse, error)
	GenerateTicket(ctx context.Context, bookingRef string) ([]byte, string, error)
}

type service struct {
	repo         Repository
	tripService  TripService
	holds        *HoldManager
	publisher    notifications.Publisher
	cacheService cache.Service
	maxSeats     int
}

func NewService(repo Repository, tripService TripService, holds *HoldManager, publisher notifications.Publisher, maxSeats int) Service {
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &service{
		repo:        repo,
		tripService: tripService,
		holds:       holds,
		publisher:   publisher,
		maxSeats:    maxSeats,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidateBookingCache(ctx context.Context, tripID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.BuildTripSeatMapKey(tripID.String()))
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_BOOKINGS_ALL)
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ANALYTICS)
}

// HoldSeats reserves the requested seats in Redis after checking them against
// the live seat map. The hold is advisory; the database transaction during
// confirmation remains the authority.
func (s *service) HoldSeats(ctx context.Context, agentID uuid.UUID, req HoldSeatsRequest) (*HoldSeatsResponse, error) {
	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip id: %w", err)
	}

	if s.maxSeats > 0 && len(req.SeatNumbers) > s.maxSeats {
		return nil, ErrTooManySeats
	}

	layout, view, err := s.tripService.BuildLayout(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if view.Status != trips.TripStatusScheduled {
		return nil, ErrTripNotOpen
	}

	if _, err := replaySelection(layout, req.SeatNumbers); err != nil {
		return nil, err
	}

	if s.holds == nil {
		return nil, fmt.Errorf("seat holds are not available")
	}

	holdID, expiresAt, err := s.holds.HoldSeats(ctx, tripID, req.SeatNumbers, agentID.String())
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogSeatHold(ctx, holdID, tripID.String(), req.SeatNumbers)

	return &HoldSeatsResponse{
		HoldID:      holdID,
		TripID:      tripID.String(),
		SeatNumbers: req.SeatNumbers,
		ExpiresAt:   expiresAt,
	}, nil
}

// ConfirmBooking finalizes a seat selection into a persisted booking. The
// selection rules are replayed server-side against the hydrated seat map so a
// stale or hand-crafted client request cannot bypass them.
func (s *service) ConfirmBooking(ctx context.Context, agentID uuid.UUID, req ConfirmBookingRequest) (*BookingResponse, error) {
	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip id: %w", err)
	}

	if s.maxSeats > 0 && len(req.SeatNumbers) > s.maxSeats {
		return nil, ErrTooManySeats
	}

	if req.HoldID != "" && s.holds != nil {
		if err := s.holds.ValidateHold(ctx, req.HoldID, tripID, req.SeatNumbers); err != nil {
			return nil, err
		}
	}

	layout, view, err := s.tripService.BuildLayout(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if view.Status != trips.TripStatusScheduled {
		return nil, ErrTripNotOpen
	}

	selection, err := replaySelection(layout, req.SeatNumbers)
	if err != nil {
		return nil, err
	}

	customer := seatmap.Customer{
		Name:   strings.TrimSpace(req.Customer.Name),
		Phone:  strings.TrimSpace(req.Customer.Phone),
		Email:  strings.TrimSpace(req.Customer.Email),
		Gender: req.Customer.Gender,
	}

	ticket, err := seatmap.Confirm(layout, selection, customer, view.PricePerSeat)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		BookingRef:     ticket.Reference,
		TripID:         tripID,
		AgentID:        agentID,
		CustomerName:   customer.Name,
		CustomerPhone:  customer.Phone,
		CustomerEmail:  customer.Email,
		CustomerGender: customer.Gender,
		TotalSeats:     len(ticket.SeatNumbers),
		TotalAmount:    ticket.Amount,
		Status:         StatusConfirmed,
	}
	for _, seat := range ticket.SeatNumbers {
		booking.Seats = append(booking.Seats, BookingSeat{
			TripID:     tripID,
			SeatNumber: seat,
			Price:      view.PricePerSeat,
			Status:     StatusConfirmed,
		})
	}

	if err := s.repo.CreateBookingWithTripUpdate(ctx, booking); err != nil {
		return nil, err
	}

	if req.HoldID != "" && s.holds != nil {
		if _, err := s.holds.ReleaseHold(ctx, req.HoldID); err != nil && !errors.Is(err, ErrHoldNotFound) {
			logger.GetDefault().ErrorWithContext(ctx, "failed to release seat hold after booking", err, nil)
		}
	}

	s.invalidateBookingCache(ctx, tripID)
	s.publishEvent(ctx, notifications.EventBookingConfirmed, booking, ticket.SeatNumbers)
	logger.GetDefault().LogBookingConfirmed(ctx, booking.BookingRef, tripID.String(), booking.TotalSeats, booking.TotalAmount)

	response := booking.ToResponse()
	return &response, nil
}

// replaySelection runs the seat selection policy over the requested seats in
// order. The requested set is accepted only if toggling each seat leaves the
// selection equal to the full request, so pairing side effects and occupied
// seats are rejected rather than silently adjusted.
func replaySelection(layout *seatmap.Layout, seatNumbers []int) (seatmap.Selection, error) {
	requested := make(map[int]struct{}, len(seatNumbers))
	for _, n := range seatNumbers {
		if _, dup := requested[n]; dup {
			return nil, fmt.Errorf("%w: seat %d requested twice", ErrSelectionRejected, n)
		}
		requested[n] = struct{}{}
	}

	selection := seatmap.NewSelection()
	for _, n := range seatNumbers {
		// Toggling a seat already pulled in by its pair partner would
		// deselect it, so skip it instead.
		if selection.Contains(n) {
			continue
		}
		next, err := seatmap.Toggle(layout, selection, n)
		if err != nil {
			return nil, err
		}
		selection = next
	}

	if len(selection) != len(requested) {
		return nil, ErrSelectionRejected
	}
	for n := range selection {
		if _, ok := requested[n]; !ok {
			return nil, ErrSelectionRejected
		}
	}

	return selection, nil
}

func (s *service) GetBookingByRef(ctx context.Context, bookingRef string) (*BookingResponse, error) {
	if s.cacheService != nil {
		var cached BookingResponse
		if err := s.cacheService.Get(ctx, constants.BuildBookingDetailKey(bookingRef), &cached); err == nil {
			return &cached, nil
		}
	}

	booking, err := s.repo.GetByRef(ctx, bookingRef)
	if err != nil {
		return nil, err
	}

	response := booking.ToResponse()

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.BuildBookingDetailKey(bookingRef), response, constants.TTL_BOOKING_DETAIL)
	}

	return &response, nil
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	bookings, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

// CancelBooking marks the booking and its seats CANCELLED, which frees the
// seats on the trip's seat map implicitly.
func (s *service) CancelBooking(ctx context.Context, bookingRef string) (*BookingResponse, error) {
	booking, err := s.repo.GetByRef(ctx, bookingRef)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}

	view, err := s.tripService.GetTripByID(booking.TripID)
	if err == nil && view.DepartureAt.Before(time.Now()) {
		return nil, ErrDepartedTrip
	}

	if err := s.repo.Cancel(ctx, booking.ID); err != nil {
		return nil, err
	}

	booking, err = s.repo.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.invalidateBookingCache(ctx, booking.TripID)

	seatNumbers := make([]int, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		seatNumbers = append(seatNumbers, seat.SeatNumber)
	}
	s.publishEvent(ctx, notifications.EventBookingCancelled, booking, seatNumbers)
	logger.GetDefault().LogBookingCancelled(ctx, booking.BookingRef, booking.TripID.String())

	response := booking.ToResponse()
	return &response, nil
}

// GenerateTicket renders the e-ticket PDF for a confirmed booking.
func (s *service) GenerateTicket(ctx context.Context, bookingRef string) ([]byte, string, error) {
	booking, err := s.repo.GetByRef(ctx, bookingRef)
	if err != nil {
		return nil, "", err
	}
	if booking.IsCancelled() {
		return nil, "", ErrAlreadyCancelled
	}

	data := TicketData{
		BookingRef:    booking.BookingRef,
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		TotalSeats:    booking.TotalSeats,
		TotalAmount:   booking.TotalAmount,
		Status:        booking.Status.String(),
	}
	for _, seat := range booking.Seats {
		data.SeatNumbers = append(data.SeatNumbers, seat.SeatNumber)
	}

	if trip, err := s.tripService.GetTripByID(booking.TripID); err == nil {
		data.DepartureAt = trip.DepartureAt.Format("2006-01-02 15:04")
		if trip.Bus != nil {
			data.BusName = trip.Bus.Name
			data.Registration = trip.Bus.RegistrationNumber
		}
		if trip.Route != nil {
			data.Origin = trip.Route.Origin
			data.Destination = trip.Route.Destination
		}
	}

	return buildTicketPDF(data)
}

func (s *service) publishEvent(ctx context.Context, eventType notifications.EventType, booking *Booking, seatNumbers []int) {
	event := notifications.NewBookingEvent(eventType, booking.BookingRef, booking.TripID)
	event.SeatNumbers = seatNumbers
	event.CustomerName = booking.CustomerName
	event.CustomerEmail = booking.CustomerEmail
	event.CustomerPhone = booking.CustomerPhone
	event.Amount = booking.TotalAmount

	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to publish booking event", err, nil)
	}
}
