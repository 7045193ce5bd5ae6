package domain

import "time"

// Interval is a half-open [Start, End) span on the timeline. It is derived
// from an appointment and a service duration, never persisted.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

// Overlaps reports whether the two half-open intervals share any instant.
// Touching endpoints (iv.End == other.Start) do not overlap, so back-to-back
// bookings are legal.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// Occupied reports whether a booking of the given duration starting at start
// would overlap any of the busy intervals.
func Occupied(start time.Time, duration time.Duration, busy []Interval) bool {
	candidate := NewInterval(start, duration)
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
