package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetOverview() (*Overview, error)
	GetDailyStats(days int) ([]DailyStat, error)
	GetBusProfitability() ([]BusProfitability, error)
	GetOccupancyStats(limit int) ([]OccupancyStat, error)
	GetAgentLeaderboard(limit int) ([]AgentLeaderboardEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOverview() (*Overview, error) {
	var overview Overview

	err := r.db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM buses) as total_buses,
			(SELECT COUNT(*) FROM buses WHERE status = 'ACTIVE') as active_buses,
			(SELECT COUNT(*) FROM routes) as total_routes,
			(SELECT COUNT(*) FROM trips) as total_trips,
			(SELECT COUNT(*) FROM trips WHERE status = 'SCHEDULED' AND departure_at > NOW()) as upcoming_trips,
			(SELECT COUNT(*) FROM bookings) as total_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'CONFIRMED') as confirmed_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'CANCELLED') as cancelled_bookings,
			(SELECT COALESCE(SUM(total_seats), 0) FROM bookings WHERE status = 'CONFIRMED') as seats_sold,
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status = 'CONFIRMED') as total_revenue,
			(SELECT COALESCE(SUM(amount), 0) FROM expenses) as total_expenses
	`).Scan(&overview).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get overview metrics: %w", err)
	}

	if overview.TotalBookings > 0 {
		overview.CancellationRate = float64(overview.CancelledBookings) / float64(overview.TotalBookings) * 100
	}
	overview.NetProfit = overview.TotalRevenue - overview.TotalExpenses

	return &overview, nil
}

func (r *repository) GetDailyStats(days int) ([]DailyStat, error) {
	var stats []DailyStat

	err := r.db.Raw(`
		SELECT
			DATE(created_at) as date,
			COUNT(*) as total_bookings,
			SUM(CASE WHEN status = 'CONFIRMED' THEN 1 ELSE 0 END) as confirmed_bookings,
			SUM(CASE WHEN status = 'CANCELLED' THEN 1 ELSE 0 END) as cancelled_bookings,
			COALESCE(SUM(CASE WHEN status = 'CONFIRMED' THEN total_seats ELSE 0 END), 0) as seats_sold,
			COALESCE(SUM(CASE WHEN status = 'CONFIRMED' THEN total_amount ELSE 0 END), 0) as revenue
		FROM bookings
		WHERE created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY date DESC
	`, time.Now().AddDate(0, 0, -days)).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}

	return stats, nil
}

func (r *repository) GetBusProfitability() ([]BusProfitability, error) {
	var rows []BusProfitability

	err := r.db.Raw(`
		SELECT
			b.id as bus_id,
			b.name as bus_name,
			b.registration_number as registration,
			COUNT(DISTINCT t.id) as trip_count,
			COALESCE(rev.seats_sold, 0) as seats_sold,
			COALESCE(rev.revenue, 0) as revenue,
			COALESCE(exp.expenses, 0) as expenses,
			COALESCE(rev.revenue, 0) - COALESCE(exp.expenses, 0) as profit
		FROM buses b
		LEFT JOIN trips t ON t.bus_id = b.id
		LEFT JOIN (
			SELECT t.bus_id, SUM(bk.total_seats) as seats_sold, SUM(bk.total_amount) as revenue
			FROM bookings bk
			JOIN trips t ON t.id = bk.trip_id
			WHERE bk.status = 'CONFIRMED'
			GROUP BY t.bus_id
		) rev ON rev.bus_id = b.id
		LEFT JOIN (
			SELECT bus_id, SUM(amount) as expenses
			FROM expenses
			GROUP BY bus_id
		) exp ON exp.bus_id = b.id
		GROUP BY b.id, b.name, b.registration_number, rev.seats_sold, rev.revenue, exp.expenses
		ORDER BY profit DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get bus profitability: %w", err)
	}

	return rows, nil
}

func (r *repository) GetOccupancyStats(limit int) ([]OccupancyStat, error) {
	var rows []OccupancyStat

	err := r.db.Raw(`
		SELECT
			t.id as trip_id,
			b.name as bus_name,
			r.name as route_name,
			t.departure_at,
			b.total_seats,
			t.booked_count,
			CASE WHEN b.total_seats > 0
				THEN ROUND(t.booked_count::numeric / b.total_seats, 4)
				ELSE 0
			END as utilization
		FROM trips t
		JOIN buses b ON b.id = t.bus_id
		JOIN routes r ON r.id = t.route_id
		WHERE t.status != 'CANCELLED'
		ORDER BY t.departure_at DESC
		LIMIT ?
	`, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get occupancy stats: %w", err)
	}

	return rows, nil
}

func (r *repository) GetAgentLeaderboard(limit int) ([]AgentLeaderboardEntry, error) {
	var rows []AgentLeaderboardEntry

	err := r.db.Raw(`
		SELECT
			u.id as agent_id,
			u.first_name || ' ' || u.last_name as agent_name,
			COUNT(*) as booking_count,
			COALESCE(SUM(bk.total_seats), 0) as seats_sold,
			COALESCE(SUM(bk.total_amount), 0) as total_sales
		FROM bookings bk
		JOIN users u ON u.id = bk.agent_id
		WHERE bk.status = 'CONFIRMED'
		GROUP BY u.id, u.first_name, u.last_name
		ORDER BY total_sales DESC
		LIMIT ?
	`, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get agent leaderboard: %w", err)
	}

	return rows, nil
}
