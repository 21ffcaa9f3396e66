package analytics

import "time"

// Overview is the headline dashboard block: what the fleet earned and spent.
type Overview struct {
	TotalBuses        int     `json:"total_buses"`
	ActiveBuses       int     `json:"active_buses"`
	TotalRoutes       int     `json:"total_routes"`
	TotalTrips        int     `json:"total_trips"`
	UpcomingTrips     int     `json:"upcoming_trips"`
	TotalBookings     int     `json:"total_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	CancellationRate  float64 `json:"cancellation_rate"`
	SeatsSold         int     `json:"seats_sold"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalExpenses     float64 `json:"total_expenses"`
	NetProfit         float64 `json:"net_profit"`
}

// DailyStat is one day in the booking/revenue time series.
type DailyStat struct {
	Date              time.Time `gorm:"column:date" json:"date"`
	TotalBookings     int       `gorm:"column:total_bookings" json:"total_bookings"`
	ConfirmedBookings int       `gorm:"column:confirmed_bookings" json:"confirmed_bookings"`
	CancelledBookings int       `gorm:"column:cancelled_bookings" json:"cancelled_bookings"`
	SeatsSold         int       `gorm:"column:seats_sold" json:"seats_sold"`
	Revenue           float64   `gorm:"column:revenue" json:"revenue"`
}

// BusProfitability is revenue minus expenses per bus.
type BusProfitability struct {
	BusID        string  `gorm:"column:bus_id" json:"bus_id"`
	BusName      string  `gorm:"column:bus_name" json:"bus_name"`
	Registration string  `gorm:"column:registration" json:"registration"`
	TripCount    int     `gorm:"column:trip_count" json:"trip_count"`
	SeatsSold    int     `gorm:"column:seats_sold" json:"seats_sold"`
	Revenue      float64 `gorm:"column:revenue" json:"revenue"`
	Expenses     float64 `gorm:"column:expenses" json:"expenses"`
	Profit       float64 `gorm:"column:profit" json:"profit"`
}

// OccupancyStat measures how full trips run, per trip and on aggregate.
type OccupancyStat struct {
	TripID      string    `gorm:"column:trip_id" json:"trip_id"`
	BusName     string    `gorm:"column:bus_name" json:"bus_name"`
	RouteName   string    `gorm:"column:route_name" json:"route_name"`
	DepartureAt time.Time `gorm:"column:departure_at" json:"departure_at"`
	TotalSeats  int       `gorm:"column:total_seats" json:"total_seats"`
	BookedCount int       `gorm:"column:booked_count" json:"booked_count"`
	Utilization float64   `gorm:"column:utilization" json:"utilization"`
}

// OccupancyReport is the utilization dashboard block.
type OccupancyReport struct {
	AverageUtilization float64         `json:"average_utilization"`
	TripCount          int             `json:"trip_count"`
	Trips              []OccupancyStat `json:"trips"`
}

// AgentLeaderboardEntry ranks agents by confirmed sales.
type AgentLeaderboardEntry struct {
	AgentID      string  `gorm:"column:agent_id" json:"agent_id"`
	AgentName    string  `gorm:"column:agent_name" json:"agent_name"`
	BookingCount int     `gorm:"column:booking_count" json:"booking_count"`
	SeatsSold    int     `gorm:"column:seats_sold" json:"seats_sold"`
	TotalSales   float64 `gorm:"column:total_sales" json:"total_sales"`
}
