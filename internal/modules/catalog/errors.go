package catalog

import "errors"

var (
	ErrValidation            = errors.New("validation error")
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomHasActiveBookings = errors.New("room has active bookings")
)
