package domain

import "time"

// DateRange is a half-open stay interval [Start, End) at day granularity.
// The exclusive end is what makes same-day turnover legal: a checkout on
// day X never conflicts with a check-in on day X.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange normalizes both bounds to UTC midnight and requires at
// least a one-night stay.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if !r.Start.Before(r.End) {
		return DateRange{}, ErrInvalidRange
	}
	return r, nil
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two half-open ranges intersect:
// [a0,a1) ∩ [b0,b1) ≠ ∅ iff a0 < b1 && b0 < a1.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// ContainsDay reports whether the calendar day of t falls inside the range.
func (r DateRange) ContainsDay(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.Start) && d.Before(r.End)
}

func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start) / (24 * time.Hour))
}
