package analytics

import (
	"context"

	"busexpress/internal/shared/constants"
	"busexpress/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetOverview(ctx context.Context) (*Overview, error)
	GetDailyStats(ctx context.Context, days int) ([]DailyStat, error)
	GetBusProfitability(ctx context.Context) ([]BusProfitability, error)
	GetOccupancyReport(ctx context.Context, limit int) (*OccupancyReport, error)
	GetAgentLeaderboard(ctx context.Context, limit int) ([]AgentLeaderboardEntry, error)
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

func (s *service) GetOverview(ctx context.Context) (*Overview, error) {
	if s.cacheService != nil {
		var cached Overview
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_ANALYTICS_OVERVIEW, &cached); err == nil {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview()
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CACHE_KEY_ANALYTICS_OVERVIEW, overview, constants.TTL_ANALYTICS_OVERVIEW)
	}

	return overview, nil
}

func (s *service) GetDailyStats(ctx context.Context, days int) ([]DailyStat, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	cacheKey := constants.BuildAnalyticsDailyKey(days)
	if s.cacheService != nil {
		var cached []DailyStat
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	stats, err := s.repo.GetDailyStats(days)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, stats, constants.TTL_ANALYTICS_DAILY)
	}

	return stats, nil
}

func (s *service) GetBusProfitability(ctx context.Context) ([]BusProfitability, error) {
	if s.cacheService != nil {
		var cached []BusProfitability
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_ANALYTICS_BUS_PROFIT, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := s.repo.GetBusProfitability()
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CACHE_KEY_ANALYTICS_BUS_PROFIT, rows, constants.TTL_ANALYTICS_PROFIT)
	}

	return rows, nil
}

func (s *service) GetOccupancyReport(ctx context.Context, limit int) (*OccupancyReport, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	if s.cacheService != nil {
		var cached OccupancyReport
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_ANALYTICS_OCCUPANCY, &cached); err == nil {
			return &cached, nil
		}
	}

	trips, err := s.repo.GetOccupancyStats(limit)
	if err != nil {
		return nil, err
	}

	report := &OccupancyReport{
		TripCount: len(trips),
		Trips:     trips,
	}
	for _, t := range trips {
		report.AverageUtilization += t.Utilization
	}
	if len(trips) > 0 {
		report.AverageUtilization /= float64(len(trips))
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CACHE_KEY_ANALYTICS_OCCUPANCY, report, constants.TTL_ANALYTICS_OCCUPANCY)
	}

	return report, nil
}

func (s *service) GetAgentLeaderboard(ctx context.Context, limit int) ([]AgentLeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if s.cacheService != nil {
		var cached []AgentLeaderboardEntry
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_ANALYTICS_AGENT_BOARD, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := s.repo.GetAgentLeaderboard(limit)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CACHE_KEY_ANALYTICS_AGENT_BOARD, rows, constants.TTL_ANALYTICS_OVERVIEW)
	}

	return rows, nil
}
