package reservation

import (
	"context"
	"errors"
	"time"

	"hotelstay/internal/domain"
	"hotelstay/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	events   EventPublisher

	// now is injected so every time-dependent decision (past check-in,
	// cancellation window) is deterministic under test.
	now func() time.Time
}

func NewService(bookings BookingRepository, rooms RoomRepository, events EventPublisher) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		events:   events,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateBooking validates the stay, checks the room, rejects conflicts and
// persists a pending booking. The conflict check and insert run atomically
// in the repository; the pg constraint violation branch below catches the
// race the application-level pre-check cannot.
func (s *Service) CreateBooking(ctx context.Context, guestID int64, req CreateBookingRequest) (*domain.Booking, error) {
	rng, err := domain.NewDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if rng.Start.Before(domain.Day(s.now())) {
		return nil, domain.ErrInvalidRange
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsAvailable {
		return nil, ErrRoomUnavailable
	}

	cnt, err := s.bookings.CountOverlapping(ctx, room.ID, rng, 0)
	if err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, ErrBookingConflict
	}

	total, err := domain.TotalPrice(room.PricePerNight, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Reference:       uuid.NewString(),
		RoomID:          room.ID,
		GuestID:         guestID,
		CheckIn:         rng.Start,
		CheckOut:        rng.End,
		Adults:          req.Adults,
		Children:        req.Children,
		TotalPrice:      total,
		SpecialRequests: req.SpecialRequests,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentUnpaid,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlappingBooking) {
			return nil, ErrBookingConflict
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// 23P01 exclusion_violation from bookings_no_overlap,
			// 23505 unique_violation
			if pgErr.Code == "23P01" || pgErr.Code == "23505" {
				return nil, ErrBookingConflict
			}
		}
		return nil, err
	}

	s.publish(ctx, domain.EventBookingCreated, b)
	return b, nil
}

// ConfirmBooking moves a pending booking to confirmed. Staff only; the
// handler gates the role.
func (s *Service) ConfirmBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, func(b *domain.Booking) error {
		return b.Confirm()
	})
}

// CompleteBooking moves a confirmed booking to completed, once the stay is
// over. The check-out-has-passed policy lives here, not in the state machine.
func (s *Service) CompleteBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, func(b *domain.Booking) error {
		return b.Complete()
	})
}

// CancelBooking cancels on behalf of the initiator. Guests may only cancel
// their own bookings and only outside the 24h window; staff cancel any
// active booking.
func (s *Service) CancelBooking(ctx context.Context, bookingID int64, by domain.Initiator, actorID int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if by == domain.InitiatorGuest && b.GuestID != actorID {
		return nil, ErrForbidden
	}

	from := b.Status
	if err := b.Cancel(by, s.now()); err != nil {
		return nil, err
	}

	if err := s.applyTransition(ctx, b, from); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventBookingStatusChanged, b)
	return b, nil
}

// MarkPaid records the external payment collaborator's settlement. Payment
// never gates booking creation or confirmation.
func (s *Service) MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.UpdatePaymentStatus(ctx, bookingID, domain.PaymentPaid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetBooking returns the booking if the actor owns it or is staff.
func (s *Service) GetBooking(ctx context.Context, bookingID, actorID int64, role domain.Role) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleStaff && b.GuestID != actorID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListGuestBookings(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookings.ListByGuest(ctx, guestID, limit, offset)
}

// RoomCalendar returns the room's upcoming active bookings for front-desk
// planning.
func (s *Service) RoomCalendar(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	return s.bookings.ListActiveByRoom(ctx, roomID, domain.Day(s.now()))
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) transition(ctx context.Context, bookingID int64, apply func(*domain.Booking) error) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	from := b.Status
	if err := apply(b); err != nil {
		return nil, err
	}

	if err := s.applyTransition(ctx, b, from); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventBookingStatusChanged, b)
	return b, nil
}

// applyTransition persists a status move with compare-and-swap on the
// previous status; losing the swap means someone else transitioned the
// booking first, which surfaces as an illegal transition.
func (s *Service) applyTransition(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	err := s.bookings.UpdateStatus(ctx, b.ID, from, b.Status, b.CancelledAt)
	if err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return domain.ErrInvalidTransition
		}
		return err
	}
	return nil
}

func (s *Service) publish(ctx context.Context, t domain.EventType, b *domain.Booking) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishBookingEvent(ctx, domain.BookingEvent{
		Type:       t,
		BookingID:  b.ID,
		Reference:  b.Reference,
		RoomID:     b.RoomID,
		GuestID:    b.GuestID,
		Status:     b.Status,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		OccurredAt: s.now().UTC(),
	})
}
