package reservation

import (
	"context"
	"time"

	"hotelstay/internal/domain"
)

// BookingRepository is the persistence contract the service depends on.
// Create must be atomic with respect to concurrent creates for the same
// room (check-then-insert under one transaction or constraint).
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CountOverlapping(ctx context.Context, roomID int64, rng domain.DateRange, excludeID int64) (int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, cancelledAt *time.Time) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error)
	ListActiveByRoom(ctx context.Context, roomID int64, from time.Time) ([]domain.Booking, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// EventPublisher receives domain events after commits. Errors are logged
// and dropped; delivery never gates the booking path.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev domain.BookingEvent) error
}
