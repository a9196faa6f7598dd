package events

import (
	"context"

	"hotelstay/internal/domain"
)

// Publisher fans a booking event out to a transport. Implementations are
// best-effort: the reservation path swallows publish errors so delivery
// can never roll back a committed booking.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, ev domain.BookingEvent) error
}

// Nop discards events; used when no broker is configured and in tests.
type Nop struct{}

func (Nop) PublishBookingEvent(context.Context, domain.BookingEvent) error { return nil }

// Multi forwards to every publisher, keeping the first error.
type Multi []Publisher

func (m Multi) PublishBookingEvent(ctx context.Context, ev domain.BookingEvent) error {
	var first error
	for _, p := range m {
		if err := p.PublishBookingEvent(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
