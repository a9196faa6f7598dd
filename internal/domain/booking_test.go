package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_FullMatrix(t *testing.T) {
	all := []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}
	legal := map[[2]BookingStatus]bool{
		{BookingPending, BookingConfirmed}:   true,
		{BookingPending, BookingCancelled}:   true,
		{BookingConfirmed, BookingCancelled}: true,
		{BookingConfirmed, BookingCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[[2]BookingStatus{from, to}], CanTransition(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestBooking_Confirm(t *testing.T) {
	b := &Booking{Status: BookingPending}
	assert.NoError(t, b.Confirm())
	assert.Equal(t, BookingConfirmed, b.Status)

	// re-applying is illegal and leaves state unchanged
	assert.ErrorIs(t, b.Confirm(), ErrInvalidTransition)
	assert.Equal(t, BookingConfirmed, b.Status)

	for _, s := range []BookingStatus{BookingCancelled, BookingCompleted} {
		b := &Booking{Status: s}
		assert.ErrorIs(t, b.Confirm(), ErrInvalidTransition)
		assert.Equal(t, s, b.Status)
	}
}

func TestBooking_Complete(t *testing.T) {
	b := &Booking{Status: BookingConfirmed}
	assert.NoError(t, b.Complete())
	assert.Equal(t, BookingCompleted, b.Status)

	b = &Booking{Status: BookingPending}
	assert.ErrorIs(t, b.Complete(), ErrInvalidTransition)
	assert.Equal(t, BookingPending, b.Status)
}

func TestBooking_Cancel_GuestWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// check-in 23h away: blocked
	b := &Booking{Status: BookingConfirmed, CheckIn: now.Add(23 * time.Hour)}
	assert.ErrorIs(t, b.Cancel(InitiatorGuest, now), ErrCancellationWindow)
	assert.Equal(t, BookingConfirmed, b.Status)

	// check-in 25h away: allowed
	b = &Booking{Status: BookingConfirmed, CheckIn: now.Add(25 * time.Hour)}
	assert.NoError(t, b.Cancel(InitiatorGuest, now))
	assert.Equal(t, BookingCancelled, b.Status)
	assert.NotNil(t, b.CancelledAt)

	// exactly 24h is inside the window
	b = &Booking{Status: BookingPending, CheckIn: now.Add(CancellationWindow)}
	assert.ErrorIs(t, b.Cancel(InitiatorGuest, now), ErrCancellationWindow)
}

func TestBooking_Cancel_StaffOverridesWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	b := &Booking{Status: BookingConfirmed, CheckIn: now.Add(2 * time.Hour)}
	assert.NoError(t, b.Cancel(InitiatorStaff, now))
	assert.Equal(t, BookingCancelled, b.Status)

	// but not from terminal states
	b = &Booking{Status: BookingCompleted, CheckIn: now.Add(2 * time.Hour)}
	assert.ErrorIs(t, b.Cancel(InitiatorStaff, now), ErrInvalidTransition)

	b = &Booking{Status: BookingCancelled}
	assert.ErrorIs(t, b.Cancel(InitiatorStaff, now), ErrInvalidTransition)
}
