package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Initiator identifies who requested a lifecycle transition.
type Initiator string

const (
	InitiatorGuest Initiator = "guest"
	InitiatorStaff Initiator = "staff"
)

// CancellationWindow is the period before check-in during which
// guest-initiated cancellation is blocked. Staff are exempt.
const CancellationWindow = 24 * time.Hour

// ActiveStatuses are the statuses that hold inventory: only these count
// for conflict detection and the room-deletion guard.
var ActiveStatuses = []BookingStatus{BookingPending, BookingConfirmed}

type Booking struct {
	ID              int64         `json:"id"`
	Reference       string        `json:"reference" gorm:"uniqueIndex"`
	RoomID          int64         `json:"room_id" gorm:"index"`
	GuestID         int64         `json:"guest_id" gorm:"index"`
	CheckIn         time.Time     `json:"check_in"`
	CheckOut        time.Time     `json:"check_out"`
	Adults          int           `json:"adults"`
	Children        int           `json:"children"`
	TotalPrice      float64       `json:"total_price"`
	SpecialRequests string        `json:"special_requests,omitempty" gorm:"type:text"`
	Status          BookingStatus `json:"status" gorm:"index"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// Range returns the stay interval [CheckIn, CheckOut).
func (b *Booking) Range() DateRange {
	return DateRange{Start: b.CheckIn, End: b.CheckOut}
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// bookingTransitions is the closed transition table. cancelled and
// completed are terminal and have no entries.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether from → to is a legal lifecycle move.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Confirm moves pending → confirmed.
func (b *Booking) Confirm() error {
	if !CanTransition(b.Status, BookingConfirmed) {
		return ErrInvalidTransition
	}
	b.Status = BookingConfirmed
	return nil
}

// Complete moves confirmed → completed. Whether check-out has actually
// passed is the caller's policy, not the state machine's.
func (b *Booking) Complete() error {
	if !CanTransition(b.Status, BookingCompleted) {
		return ErrInvalidTransition
	}
	b.Status = BookingCompleted
	return nil
}

// Cancel moves an active booking to cancelled. Guests are held to the
// cancellation window relative to now; staff may cancel any active
// booking at any time.
func (b *Booking) Cancel(by Initiator, now time.Time) error {
	if !CanTransition(b.Status, BookingCancelled) {
		return ErrInvalidTransition
	}
	if by == InitiatorGuest && !now.Before(b.CheckIn.Add(-CancellationWindow)) {
		return ErrCancellationWindow
	}
	b.Status = BookingCancelled
	t := now
	b.CancelledAt = &t
	return nil
}
