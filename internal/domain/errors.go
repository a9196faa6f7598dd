package domain

import "errors"

var (
	ErrInvalidRange       = errors.New("invalid date range")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrCancellationWindow = errors.New("cancellation window closed")
)
