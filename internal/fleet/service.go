package fleet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"busexpress/internal/seatmap"
	"busexpress/internal/shared/constants"
	"busexpress/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBusNotFound       = errors.New("bus not found")
	ErrRegistrationTaken = errors.New("registration number already in use")
	ErrInvalidSeatConfig = errors.New("total seats do not form a valid seat layout")
	ErrBusNotActive      = errors.New("bus is not active")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateBus(userID uuid.UUID, req CreateBusRequest) (*BusResponse, error)
	GetBusByID(id uuid.UUID) (*BusResponse, error)
	UpdateBus(id uuid.UUID, req UpdateBusRequest) (*BusResponse, error)
	DeleteBus(id uuid.UUID) error
	GetAllBuses(query BusListQuery) (*PaginatedBuses, error)
	GetActiveBuses() ([]BusResponse, error)
	// GetBusSeatCount is used by the trips module to build seat maps
	GetBusSeatCount(id uuid.UUID) (int, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateFleetCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_FLEET_ALL)
}

func (s *service) CreateBus(userID uuid.UUID, req CreateBusRequest) (*BusResponse, error) {
	// The seat count must form a buildable layout before the bus is usable
	// for trips.
	if _, err := seatmap.BuildLayout(req.TotalSeats); err != nil {
		return nil, ErrInvalidSeatConfig
	}

	exists, err := s.repo.RegistrationExists(req.RegistrationNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}
	if exists {
		return nil, ErrRegistrationTaken
	}

	bus := &Bus{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		TotalSeats:         req.TotalSeats,
		Amenities:          req.Amenities,
		Status:             BusStatusActive,
		CreatedBy:          userID,
	}

	if err := s.repo.Create(bus); err != nil {
		return nil, fmt.Errorf("failed to create bus: %w", err)
	}

	s.invalidateFleetCache(context.Background())

	resp := bus.ToResponse()
	return &resp, nil
}

func (s *service) GetBusByID(id uuid.UUID) (*BusResponse, error) {
	ctx := context.Background()
	cacheKey := constants.BuildBusDetailKey(id.String())

	var cached BusResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	bus, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}

	resp := bus.ToResponse()
	s.setCache(ctx, cacheKey, resp, constants.TTL_BUS_DETAIL)

	return &resp, nil
}

func (s *service) UpdateBus(id uuid.UUID, req UpdateBusRequest) (*BusResponse, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Amenities != nil {
		updates["amenities"] = req.Amenities
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return s.GetBusByID(id)
	}

	bus, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}

	s.invalidateFleetCache(context.Background())

	resp := bus.ToResponse()
	return &resp, nil
}

func (s *service) DeleteBus(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBusNotFound
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete bus: %w", err)
	}

	s.invalidateFleetCache(context.Background())
	return nil
}

func (s *service) GetAllBuses(query BusListQuery) (*PaginatedBuses, error) {
	ctx := context.Background()

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	cacheKey := constants.BuildBusListKey(page, limit, query.Status)

	// Searches bypass the cache; they are rare and highly variable.
	if query.Search == "" {
		var cached PaginatedBuses
		if err := s.getCache(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	buses, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list buses: %w", err)
	}

	responses := make([]BusResponse, len(buses))
	for i := range buses {
		responses[i] = buses[i].ToResponse()
	}

	result := &PaginatedBuses{
		Buses:      responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}

	if query.Search == "" {
		s.setCache(ctx, cacheKey, result, constants.TTL_BUS_LIST)
	}

	return result, nil
}

func (s *service) GetActiveBuses() ([]BusResponse, error) {
	buses, err := s.repo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active buses: %w", err)
	}

	responses := make([]BusResponse, len(buses))
	for i := range buses {
		responses[i] = buses[i].ToResponse()
	}
	return responses, nil
}

func (s *service) GetBusSeatCount(id uuid.UUID) (int, error) {
	bus, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrBusNotFound
		}
		return 0, err
	}

	if bus.Status != BusStatusActive {
		return 0, ErrBusNotActive
	}

	return bus.TotalSeats, nil
}
