package shared

import "time"

// Period is a half-open time interval [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod returns ErrInvalidPeriod unless start is strictly before end.
func NewPeriod(start, end time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the period. End is excluded.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}
