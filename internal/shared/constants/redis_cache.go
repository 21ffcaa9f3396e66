package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for BusExpress
// Pattern: busexpress:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for fleet and routes
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for user profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for trip details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for trip listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for trip search
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for analytics
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for booking lists
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for live seat maps
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "busexpress"
)

// ================== FLEET MODULE ==================

const (
	CACHE_KEY_BUSES_LIST  = CACHE_PREFIX + ":fleet:list"         // + :page:X:limit:Y:status:Z
	CACHE_KEY_BUS_DETAIL  = CACHE_PREFIX + ":fleet:detail:uuid:" // + bus-id
	CACHE_KEY_BUSES_COUNT = CACHE_PREFIX + ":fleet:count"
)

const (
	TTL_BUS_LIST   = TTL_STATIC_MEDIUM // 12 hours
	TTL_BUS_DETAIL = TTL_STATIC_MEDIUM // 12 hours
)

// ================== ROUTES MODULE ==================

const (
	CACHE_KEY_ROUTES_LIST  = CACHE_PREFIX + ":routes:list"         // + :page:X:limit:Y
	CACHE_KEY_ROUTE_DETAIL = CACHE_PREFIX + ":routes:detail:uuid:" // + route-id
)

const (
	TTL_ROUTE_LIST   = TTL_STATIC_MEDIUM // 12 hours
	TTL_ROUTE_DETAIL = TTL_STATIC_MEDIUM // 12 hours
)

// ================== TRIPS MODULE ==================

const (
	CACHE_KEY_TRIPS_LIST    = CACHE_PREFIX + ":trips:list"         // + :page:X:limit:Y:status:Z
	CACHE_KEY_TRIPS_SEARCH  = CACHE_PREFIX + ":trips:search"       // + :route:X:date:Y
	CACHE_KEY_TRIP_DETAIL   = CACHE_PREFIX + ":trips:detail:uuid:" // + trip-id
	CACHE_KEY_TRIP_SEAT_MAP = CACHE_PREFIX + ":trips:seatmap:"     // + trip-id
)

const (
	TTL_TRIP_LIST     = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_TRIP_SEARCH   = TTL_SEMI_STATIC_QUICK  // 15 minutes
	TTL_TRIP_DETAIL   = TTL_SEMI_STATIC_MEDIUM // 2 hours
	TTL_TRIP_SEAT_MAP = TTL_REALTIME_SHORT     // 30 seconds
)

// ================== BOOKINGS MODULE ==================

const (
	CACHE_KEY_TRIP_BOOKINGS  = CACHE_PREFIX + ":bookings:trip:uuid:" // + trip-id:page:X
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:ref:" // + booking-ref
)

const (
	TTL_TRIP_BOOKINGS  = TTL_DYNAMIC_SHORT  // 5 minutes
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_OVERVIEW    = CACHE_PREFIX + ":analytics:overview"
	CACHE_KEY_ANALYTICS_DAILY       = CACHE_PREFIX + ":analytics:daily:days:"  // + day-count
	CACHE_KEY_ANALYTICS_BUS_PROFIT  = CACHE_PREFIX + ":analytics:profit:bus"
	CACHE_KEY_ANALYTICS_OCCUPANCY   = CACHE_PREFIX + ":analytics:occupancy"
	CACHE_KEY_ANALYTICS_AGENT_BOARD = CACHE_PREFIX + ":analytics:agents:leaderboard"
)

const (
	TTL_ANALYTICS_OVERVIEW  = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_ANALYTICS_DAILY     = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_ANALYTICS_PROFIT    = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_ANALYTICS_OCCUPANCY = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== AUTH MODULE ==================

const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
)

const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT // 6 hours
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_FLEET_ALL    = CACHE_PREFIX + ":fleet:*"
	PATTERN_INVALIDATE_ROUTES_ALL   = CACHE_PREFIX + ":routes:*"
	PATTERN_INVALIDATE_TRIPS_ALL    = CACHE_PREFIX + ":trips:*"
	PATTERN_INVALIDATE_BOOKINGS_ALL = CACHE_PREFIX + ":bookings:*"
	PATTERN_INVALIDATE_ANALYTICS    = CACHE_PREFIX + ":analytics:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildBusListKey(page, limit int, status string) string {
	if status != "" {
		return CACHE_KEY_BUSES_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit) + ":status:" + status
	}
	return CACHE_KEY_BUSES_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildBusDetailKey(busID string) string {
	return CACHE_KEY_BUS_DETAIL + busID
}

func BuildRouteDetailKey(routeID string) string {
	return CACHE_KEY_ROUTE_DETAIL + routeID
}

func BuildTripDetailKey(tripID string) string {
	return CACHE_KEY_TRIP_DETAIL + tripID
}

func BuildTripSearchKey(routeID, date string) string {
	return CACHE_KEY_TRIPS_SEARCH + ":route:" + routeID + ":date:" + date
}

func BuildTripSeatMapKey(tripID string) string {
	return CACHE_KEY_TRIP_SEAT_MAP + tripID
}

func BuildBookingDetailKey(bookingRef string) string {
	return CACHE_KEY_BOOKING_DETAIL + bookingRef
}

func BuildTripBookingsKey(tripID string, page int) string {
	return CACHE_KEY_TRIP_BOOKINGS + tripID + ":page:" + fmt.Sprintf("%d", page)
}

func BuildAnalyticsDailyKey(days int) string {
	return CACHE_KEY_ANALYTICS_DAILY + fmt.Sprintf("%d", days)
}
