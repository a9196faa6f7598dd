package reservation

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room administratively unavailable")
	ErrBookingConflict = errors.New("booking conflict")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("forbidden")
)
