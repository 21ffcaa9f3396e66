package bookings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSeatAlreadyHeld = errors.New("seat already held by another booking")
	ErrHoldNotFound    = errors.New("hold not found or expired")
	ErrHoldMismatch    = errors.New("hold does not cover the requested seats")
)

// HoldManager reserves seats in Redis for the duration of checkout so two
// agents cannot sell the same seat while customer details are collected.
// All mutations go through Lua scripts to stay atomic.
type HoldManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewHoldManager(redisClient *redis.Client, ttl time.Duration) *HoldManager {
	return &HoldManager{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Lua script for atomic seat holding - prevents race conditions
const luaAtomicSeatHold = `
-- KEYS[1] = hold_id
-- ARGV[1] = agent_id
-- ARGV[2] = trip_id
-- ARGV[3] = ttl_seconds
-- ARGV[4..N] = seat numbers

local hold_id = KEYS[1]
local agent_id = ARGV[1]
local trip_id = ARGV[2]
local ttl = tonumber(ARGV[3])

-- Check if all seats are free before holding any
for i = 4, #ARGV do
    local seat_key = "busexpress:seat_hold:" .. trip_id .. ":" .. ARGV[i]
    if redis.call("EXISTS", seat_key) == 1 then
        return {0, ARGV[i]}
    end
end

local hold_key = "busexpress:hold:" .. hold_id
local hold_seats_key = "busexpress:hold_seats:" .. hold_id

redis.call("HMSET", hold_key,
    "agent_id", agent_id,
    "trip_id", trip_id,
    "seat_count", #ARGV - 3,
    "created_at", redis.call("TIME")[1]
)
redis.call("EXPIRE", hold_key, ttl)

for i = 4, #ARGV do
    local seat_key = "busexpress:seat_hold:" .. trip_id .. ":" .. ARGV[i]
    redis.call("SETEX", seat_key, ttl, agent_id .. ":" .. hold_id)
    redis.call("SADD", hold_seats_key, ARGV[i])
end

redis.call("EXPIRE", hold_seats_key, ttl)

return {1, "success"}
`

// Lua script for atomic hold release
const luaAtomicSeatRelease = `
-- KEYS[1] = hold_id
local hold_id = KEYS[1]

local hold_key = "busexpress:hold:" .. hold_id
local hold_seats_key = "busexpress:hold_seats:" .. hold_id

local trip_id = redis.call("HGET", hold_key, "trip_id")
if not trip_id then
    return {0, "hold_not_found"}
end

local seats = redis.call("SMEMBERS", hold_seats_key)
for i = 1, #seats do
    redis.call("DEL", "busexpress:seat_hold:" .. trip_id .. ":" .. seats[i])
end

redis.call("DEL", hold_key)
redis.call("DEL", hold_seats_key)

return {1, #seats}
`

// HoldSeats atomically holds the given seats on a trip. Returns the hold ID
// and its expiry.
func (h *HoldManager) HoldSeats(ctx context.Context, tripID uuid.UUID, seatNumbers []int, agentID string) (string, time.Time, error) {
	if h.redis == nil {
		return "", time.Time{}, fmt.Errorf("redis client not available")
	}

	holdID := uuid.New().String()

	keys := []string{holdID}
	args := []interface{}{
		agentID,
		tripID.String(),
		strconv.Itoa(int(h.ttl.Seconds())),
	}
	for _, seat := range seatNumbers {
		args = append(args, strconv.Itoa(seat))
	}

	result, err := h.redis.EvalSha(ctx, luaAtomicSeatHold, keys, args...).Result()
	if err != nil {
		// If script is not loaded, try to load and execute
		result, err = h.redis.Eval(ctx, luaAtomicSeatHold, keys, args...).Result()
		if err != nil {
			return "", time.Time{}, fmt.Errorf("failed to execute atomic seat hold: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return "", time.Time{}, fmt.Errorf("unexpected result format from hold script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return "", time.Time{}, fmt.Errorf("invalid success flag in hold script result")
	}

	if success == 0 {
		if conflictSeat, ok := resultArray[1].(string); ok {
			return "", time.Time{}, fmt.Errorf("%w: seat %s", ErrSeatAlreadyHeld, conflictSeat)
		}
		return "", time.Time{}, ErrSeatAlreadyHeld
	}

	return holdID, time.Now().Add(h.ttl), nil
}

// ValidateHold checks the hold exists, belongs to the trip, and covers all
// the requested seat numbers.
func (h *HoldManager) ValidateHold(ctx context.Context, holdID string, tripID uuid.UUID, seatNumbers []int) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	holdKey := "busexpress:hold:" + holdID
	heldTripID, err := h.redis.HGet(ctx, holdKey, "trip_id").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrHoldNotFound
		}
		return fmt.Errorf("failed to read hold: %w", err)
	}

	if heldTripID != tripID.String() {
		return ErrHoldMismatch
	}

	heldSeats, err := h.redis.SMembers(ctx, "busexpress:hold_seats:"+holdID).Result()
	if err != nil {
		return fmt.Errorf("failed to read hold seats: %w", err)
	}

	held := make(map[string]struct{}, len(heldSeats))
	for _, seat := range heldSeats {
		held[seat] = struct{}{}
	}

	for _, seat := range seatNumbers {
		if _, ok := held[strconv.Itoa(seat)]; !ok {
			return ErrHoldMismatch
		}
	}

	return nil
}

// ReleaseHold atomically releases a hold and returns how many seats it freed.
func (h *HoldManager) ReleaseHold(ctx context.Context, holdID string) (int, error) {
	if h.redis == nil {
		return 0, fmt.Errorf("redis client not available")
	}

	result, err := h.redis.EvalSha(ctx, luaAtomicSeatRelease, []string{holdID}).Result()
	if err != nil {
		result, err = h.redis.Eval(ctx, luaAtomicSeatRelease, []string{holdID}).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to execute atomic seat release: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return 0, fmt.Errorf("unexpected result format from release script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid success flag in release script result")
	}

	if success == 0 {
		return 0, ErrHoldNotFound
	}

	released, ok := resultArray[1].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid released count in release script result")
	}

	return int(released), nil
}

// PreloadScripts loads the Lua scripts into Redis at startup so later calls
// hit the EVALSHA fast path.
func (h *HoldManager) PreloadScripts(ctx context.Context) error {
	if h.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := h.redis.ScriptLoad(ctx, luaAtomicSeatHold).Result(); err != nil {
		return fmt.Errorf("failed to load seat hold script: %w", err)
	}

	if _, err := h.redis.ScriptLoad(ctx, luaAtomicSeatRelease).Result(); err != nil {
		return fmt.Errorf("failed to load seat release script: %w", err)
	}

	return nil
}
