package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventTripCancelled    EventType = "trip.cancelled"
)

// BookingEvent is the message published to Kafka whenever a booking changes
// state. Consumers notify the customer and downstream systems.
type BookingEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          EventType `json:"type"`
	BookingRef    string    `json:"booking_ref"`
	TripID        uuid.UUID `json:"trip_id"`
	SeatNumbers   []int     `json:"seat_numbers"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	Amount        float64   `json:"amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType EventType, bookingRef string, tripID uuid.UUID) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		BookingRef: bookingRef,
		TripID:     tripID,
		OccurredAt: time.Now(),
	}
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func BookingEventFromJSON(data []byte) (*BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetPartitionKey routes all events for one trip to the same partition so
// consumers see them in order.
func (e *BookingEvent) GetPartitionKey() string {
	return e.TripID.String()
}
