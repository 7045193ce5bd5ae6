package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultSlotEvery is the booking grid granularity. It is policy, not derived
// from any service duration: the grid is the same whichever service is being
// checked against it.
const DefaultSlotEvery = 30 * time.Minute

// Hours is the business's static calendar policy: open and close as wall-clock
// offsets from midnight (close exclusive) and the set of working weekdays.
// Treated as immutable configuration once constructed.
type Hours struct {
	Open  time.Duration
	Close time.Duration
	Days  []time.Weekday
}

// DefaultHours is 09:00-18:00, Monday through Saturday.
func DefaultHours() Hours {
	return Hours{
		Open:  9 * time.Hour,
		Close: 18 * time.Hour,
		Days: []time.Weekday{
			time.Monday,
			time.Tuesday,
			time.Wednesday,
			time.Thursday,
			time.Friday,
			time.Saturday,
		},
	}
}

func (h Hours) IsWorkingDay(day time.Weekday) bool {
	for _, d := range h.Days {
		if d == day {
			return true
		}
	}
	return false
}

// InWorkingHours reports whether a time of day falls inside business hours.
// Open is inclusive, close exclusive.
func (h Hours) InWorkingHours(timeOfDay time.Duration) bool {
	return timeOfDay >= h.Open && timeOfDay < h.Close
}

func (h Hours) Validate() error {
	if h.Open < 0 || h.Close > 24*time.Hour {
		return errors.New("business hours must fall within a single day")
	}
	if h.Open >= h.Close {
		return errors.New("open time must be before close time")
	}
	if len(h.Days) == 0 {
		return errors.New("at least one working day is required")
	}
	for _, d := range h.Days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday %d", d)
		}
	}
	return nil
}

// Display renders the hours for user-facing messages, e.g. "9:00 AM - 6:00 PM".
func (h Hours) Display() string {
	return clockDisplay(h.Open) + " - " + clockDisplay(h.Close)
}

// DaysDisplay renders the working-day set, collapsing a consecutive run into
// "Monday-Saturday" form.
func (h Hours) DaysDisplay() string {
	if len(h.Days) == 0 {
		return ""
	}

	days := make([]time.Weekday, 0, len(h.Days))
	seen := make(map[time.Weekday]struct{}, len(h.Days))
	for _, d := range h.Days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return mondayIndex(days[i]) < mondayIndex(days[j])
	})

	consecutive := len(days) > 1
	for i := 1; i < len(days); i++ {
		if mondayIndex(days[i]) != mondayIndex(days[i-1])+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return days[0].String() + "-" + days[len(days)-1].String()
	}

	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

// TimeOfDay returns t's wall-clock offset from midnight in its own location.
func TimeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// SlotGrid generates the full candidate grid of start times for the calendar
// date of day: successive steps of every from open while still before close.
// It is day-agnostic and produces a grid for any date given; working-day
// filtering is the caller's concern.
func SlotGrid(day time.Time, h Hours, every time.Duration) []time.Time {
	if every <= 0 {
		return nil
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := midnight.Add(h.Close)

	var slots []time.Time
	for cur := midnight.Add(h.Open); cur.Before(end); cur = cur.Add(every) {
		slots = append(slots, cur)
	}
	return slots
}

func clockDisplay(timeOfDay time.Duration) string {
	return time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC).Add(timeOfDay).Format("3:04 PM")
}

func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
