package domain

import "time"

type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
)

// BookingEvent is the domain event emitted after a booking is created or
// transitioned. Subscribers (email, dashboards) are best-effort; delivery
// failure never rolls back the booking.
type BookingEvent struct {
	Type       EventType     `json:"type"`
	BookingID  int64         `json:"booking_id"`
	Reference  string        `json:"reference"`
	RoomID     int64         `json:"room_id"`
	GuestID    int64         `json:"guest_id"`
	Status     BookingStatus `json:"status"`
	CheckIn    time.Time     `json:"check_in"`
	CheckOut   time.Time     `json:"check_out"`
	OccurredAt time.Time     `json:"occurred_at"`
}
