package routes

import (
	"context"
	"errors"
	"fmt"
	"math"

	"busexpress/internal/shared/constants"
	"busexpress/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRouteNotFound     = errors.New("route not found")
	ErrDuplicateSequence = errors.New("boarding point sequences must be unique")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateRoute(userID uuid.UUID, req CreateRouteRequest) (*RouteResponse, error)
	GetRouteByID(id uuid.UUID) (*RouteResponse, error)
	UpdateRoute(id uuid.UUID, req UpdateRouteRequest) (*RouteResponse, error)
	DeleteRoute(id uuid.UUID) error
	GetAllRoutes(query RouteListQuery) (*PaginatedRoutes, error)
	// RouteExists is used by the trips module when scheduling
	RouteExists(id uuid.UUID) (bool, error)
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

func (s *service) invalidateRouteCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ROUTES_ALL)
}

func validateSequences(points []BoardingPointInput) error {
	seen := make(map[int]struct{}, len(points))
	for _, p := range points {
		if _, dup := seen[p.Sequence]; dup {
			return ErrDuplicateSequence
		}
		seen[p.Sequence] = struct{}{}
	}
	return nil
}

func toBoardingPoints(inputs []BoardingPointInput) []BoardingPoint {
	points := make([]BoardingPoint, len(inputs))
	for i, in := range inputs {
		points[i] = BoardingPoint{
			Name:         in.Name,
			Landmark:     in.Landmark,
			OffsetMinute: in.OffsetMinute,
			Sequence:     in.Sequence,
		}
	}
	return points
}

func (s *service) CreateRoute(userID uuid.UUID, req CreateRouteRequest) (*RouteResponse, error) {
	if err := validateSequences(req.BoardingPoints); err != nil {
		return nil, err
	}

	route := &Route{
		Name:            req.Name,
		Origin:          req.Origin,
		Destination:     req.Destination,
		DistanceKM:      req.DistanceKM,
		DurationMinutes: req.DurationMinutes,
		BoardingPoints:  toBoardingPoints(req.BoardingPoints),
		CreatedBy:       userID,
	}

	if err := s.repo.Create(route); err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	s.invalidateRouteCache(context.Background())

	resp := route.ToResponse()
	return &resp, nil
}

func (s *service) GetRouteByID(id uuid.UUID) (*RouteResponse, error) {
	ctx := context.Background()
	cacheKey := constants.BuildRouteDetailKey(id.String())

	if s.cacheService != nil {
		var cached RouteResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	route, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	resp := route.ToResponse()
	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, resp, constants.TTL_ROUTE_DETAIL)
	}

	return &resp, nil
}

func (s *service) UpdateRoute(id uuid.UUID, req UpdateRouteRequest) (*RouteResponse, error) {
	if err := validateSequences(req.BoardingPoints); err != nil {
		return nil, err
	}

	route, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Origin != nil {
		updates["origin"] = *req.Origin
	}
	if req.Destination != nil {
		updates["destination"] = *req.Destination
	}
	if req.DistanceKM != nil {
		updates["distance_km"] = *req.DistanceKM
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}

	var points []BoardingPoint
	if req.BoardingPoints != nil {
		points = toBoardingPoints(req.BoardingPoints)
	}

	updated, err := s.repo.Update(route, updates, points)
	if err != nil {
		return nil, fmt.Errorf("failed to update route: %w", err)
	}

	s.invalidateRouteCache(context.Background())

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) DeleteRoute(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRouteNotFound
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}

	s.invalidateRouteCache(context.Background())
	return nil
}

func (s *service) GetAllRoutes(query RouteListQuery) (*PaginatedRoutes, error) {
	routes, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	responses := make([]RouteResponse, len(routes))
	for i := range routes {
		responses[i] = routes[i].ToResponse()
	}

	return &PaginatedRoutes{
		Routes:     responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}, nil
}

func (s *service) RouteExists(id uuid.UUID) (bool, error) {
	_, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
