package domain

import (
	"math"
	"time"
)

// Nights returns the number of nights in a stay, rounding partial days up.
// Bounds normally arrive normalized to midnight (NewDateRange), so the ceil
// only matters for raw timestamps.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrInvalidRange
	}
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n, nil
}

// TotalPrice is nightlyRate × nights, rounded to 2 decimals.
func TotalPrice(nightlyRate float64, checkIn, checkOut time.Time) (float64, error) {
	n, err := Nights(checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	total := nightlyRate * float64(n)
	return math.Round(total*100) / 100, nil
}
