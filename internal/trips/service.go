package trips

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"busexpress/internal/seatmap"
	"busexpress/internal/shared/constants"
	"busexpress/pkg/cache"
	"busexpress/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrTripNotEditable   = errors.New("trip can no longer be modified")
	ErrTripHasBookings   = errors.New("trip has confirmed bookings")
	ErrBusAlreadyBooked  = errors.New("bus already scheduled at this time")
	ErrDepartureInPast   = errors.New("departure must be in the future")
	ErrRouteNotFound     = errors.New("route not found")
	ErrBusUnavailable    = errors.New("bus is not available")
)

// BusService is the slice of the fleet service the trips module depends on.
type BusService interface {
	GetBusSeatCount(id uuid.UUID) (int, error)
}

// RouteService is the slice of the routes service the trips module depends on.
type RouteService interface {
	RouteExists(id uuid.UUID) (bool, error)
}

// OccupiedSeat is one confirmed seat on a trip.
type OccupiedSeat struct {
	SeatNumber int
	Female     bool
}

// SeatInventory provides confirmed seat occupancy. Implemented by the
// bookings module and injected at startup to avoid an import cycle.
type SeatInventory interface {
	ConfirmedSeats(ctx context.Context, tripID uuid.UUID) ([]OccupiedSeat, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetSeatInventory(inventory SeatInventory)
	CreateTrip(userID uuid.UUID, req CreateTripRequest) (*TripResponse, error)
	GetTripByID(id uuid.UUID) (*TripResponse, error)
	UpdateTrip(id uuid.UUID, req UpdateTripRequest) (*TripResponse, error)
	DeleteTrip(id uuid.UUID) error
	GetAllTrips(query TripListQuery) (*PaginatedTrips, error)
	GetSeatMap(ctx context.Context, id uuid.UUID) (*SeatMapResponse, error)
	ToggleSeat(ctx context.Context, id uuid.UUID, req ToggleSeatRequest) (*ToggleSeatResponse, error)
	// BuildLayout hydrates the seat layout for a trip from confirmed
	// bookings. Used by the bookings module when finalizing.
	BuildLayout(ctx context.Context, id uuid.UUID) (*seatmap.Layout, *BookingView, error)
}

type service struct {
	repo          Repository
	busService    BusService
	routeService  RouteService
	seatInventory SeatInventory
	cacheService  cache.Service
}

func NewService(repo Repository, busService BusService, routeService RouteService) Service {
	return &service{
		repo:         repo,
		busService:   busService,
		routeService: routeService,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetSeatInventory(inventory SeatInventory) {
	s.seatInventory = inventory
}

func (s *service) invalidateTripCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_TRIPS_ALL)
}

func (s *service) CreateTrip(userID uuid.UUID, req CreateTripRequest) (*TripResponse, error) {
	busID, err := uuid.Parse(req.BusID)
	if err != nil {
		return nil, fmt.Errorf("invalid bus id: %w", err)
	}
	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		return nil, fmt.Errorf("invalid route id: %w", err)
	}

	if req.DepartureAt.Before(time.Now()) {
		return nil, ErrDepartureInPast
	}

	// The bus must be active and its seat count buildable.
	if _, err := s.busService.GetBusSeatCount(busID); err != nil {
		return nil, ErrBusUnavailable
	}

	exists, err := s.routeService.RouteExists(routeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRouteNotFound
	}

	scheduled, err := s.repo.BusScheduledAt(busID, req.DepartureAt)
	if err != nil {
		return nil, err
	}
	if scheduled {
		return nil, ErrBusAlreadyBooked
	}

	trip := &Trip{
		BusID:        busID,
		RouteID:      routeID,
		DepartureAt:  req.DepartureAt,
		PricePerSeat: req.PricePerSeat,
		Status:       TripStatusScheduled,
		CreatedBy:    userID,
	}

	if err := s.repo.Create(trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	s.invalidateTripCache(context.Background())
	logger.GetDefault().LogTripCreated(context.Background(), trip.ID.String(), busID.String(), routeID.String())

	created, err := s.repo.GetByID(trip.ID)
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse()
	return &resp, nil
}

func (s *service) GetTripByID(id uuid.UUID) (*TripResponse, error) {
	ctx := context.Background()
	cacheKey := constants.BuildTripDetailKey(id.String())

	if s.cacheService != nil {
		var cached TripResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	trip, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	resp := trip.ToResponse()
	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, resp, constants.TTL_TRIP_DETAIL)
	}

	return &resp, nil
}

func (s *service) UpdateTrip(id uuid.UUID, req UpdateTripRequest) (*TripResponse, error) {
	trip, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	if trip.Status == TripStatusCompleted || trip.Status == TripStatusCancelled {
		return nil, ErrTripNotEditable
	}

	updates := make(map[string]interface{})
	if req.DepartureAt != nil {
		if req.DepartureAt.Before(time.Now()) {
			return nil, ErrDepartureInPast
		}
		updates["departure_at"] = *req.DepartureAt
	}
	if req.PricePerSeat != nil {
		updates["price_per_seat"] = *req.PricePerSeat
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		resp := trip.ToResponse()
		return &resp, nil
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	s.invalidateTripCache(context.Background())

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) DeleteTrip(id uuid.UUID) error {
	trip, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTripNotFound
		}
		return err
	}

	if trip.BookedCount > 0 {
		return ErrTripHasBookings
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	s.invalidateTripCache(context.Background())
	return nil
}

func (s *service) GetAllTrips(query TripListQuery) (*PaginatedTrips, error) {
	trips, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	responses := make([]TripResponse, len(trips))
	for i := range trips {
		responses[i] = trips[i].ToResponse()
	}

	return &PaginatedTrips{
		Trips:      responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}, nil
}

func (s *service) GetSeatMap(ctx context.Context, id uuid.UUID) (*SeatMapResponse, error) {
	layout, view, err := s.BuildLayout(ctx, id)
	if err != nil {
		return nil, err
	}

	ratio := layout.OccupancyRatio()

	return &SeatMapResponse{
		TripID:           view.ID,
		TotalSeats:       layout.TotalSeats(),
		OccupiedSeats:    layout.OccupiedSeats(),
		OccupancyRatio:   ratio,
		PairingMandatory: ratio < seatmap.PairingThreshold,
		PricePerSeat:     view.PricePerSeat,
		Seats:            layout.Seats(),
	}, nil
}

// ToggleSeat applies one seat tap to the client's in-progress selection
// against the live seat map and returns the resulting selection. Pair side
// effects below the pairing threshold show up here as extra seats appearing
// or disappearing.
func (s *service) ToggleSeat(ctx context.Context, id uuid.UUID, req ToggleSeatRequest) (*ToggleSeatResponse, error) {
	layout, view, err := s.BuildLayout(ctx, id)
	if err != nil {
		return nil, err
	}

	selection := seatmap.NewSelection()
	for _, n := range req.Selection {
		seat, err := layout.Seat(n)
		if err != nil {
			return nil, err
		}
		if seat.Occupied {
			return nil, seatmap.ErrSeatOccupied
		}
		selection[n] = struct{}{}
	}

	next, err := seatmap.Toggle(layout, selection, req.SeatNumber)
	if err != nil {
		return nil, err
	}

	return &ToggleSeatResponse{
		TripID:           view.ID,
		Selection:        next.Numbers(),
		TotalAmount:      view.PricePerSeat * float64(len(next)),
		PairingMandatory: layout.OccupancyRatio() < seatmap.PairingThreshold,
	}, nil
}

func (s *service) BuildLayout(ctx context.Context, id uuid.UUID) (*seatmap.Layout, *BookingView, error) {
	trip, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTripNotFound
		}
		return nil, nil, err
	}

	if trip.Bus == nil {
		return nil, nil, ErrBusUnavailable
	}

	layout, err := seatmap.BuildLayout(trip.Bus.TotalSeats)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build seat layout: %w", err)
	}

	if s.seatInventory != nil {
		occupied, err := s.seatInventory.ConfirmedSeats(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load confirmed seats: %w", err)
		}

		// Group by gender so each Occupy call carries the right flag.
		var femaleSeats, otherSeats []int
		for _, seat := range occupied {
			if seat.Female {
				femaleSeats = append(femaleSeats, seat.SeatNumber)
			} else {
				otherSeats = append(otherSeats, seat.SeatNumber)
			}
		}
		if err := layout.Occupy(femaleSeats, true); err != nil {
			return nil, nil, fmt.Errorf("seat inventory inconsistent: %w", err)
		}
		if err := layout.Occupy(otherSeats, false); err != nil {
			return nil, nil, fmt.Errorf("seat inventory inconsistent: %w", err)
		}
	}

	view := &BookingView{
		ID:           trip.ID,
		TotalSeats:   trip.Bus.TotalSeats,
		PricePerSeat: trip.PricePerSeat,
		Status:       trip.Status,
		DepartureAt:  trip.DepartureAt,
		BookedCount:  trip.BookedCount,
	}

	return layout, view, nil
}
