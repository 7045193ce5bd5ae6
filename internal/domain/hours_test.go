package domain

import (
	"testing"
	"time"
)

func TestHoursIsWorkingDay(t *testing.T) {
	h := DefaultHours()

	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		if !h.IsWorkingDay(d) {
			t.Fatalf("IsWorkingDay(%s) = false, want true", d)
		}
	}
	if h.IsWorkingDay(time.Sunday) {
		t.Fatalf("IsWorkingDay(Sunday) = true, want false")
	}
}

func TestHoursInWorkingHours(t *testing.T) {
	h := DefaultHours()

	cases := []struct {
		name      string
		timeOfDay time.Duration
		want      bool
	}{
		{"before open", 8*time.Hour + 59*time.Minute, false},
		{"open is inclusive", 9 * time.Hour, true},
		{"midday", 13 * time.Hour, true},
		{"last slot before close", 17*time.Hour + 59*time.Minute, true},
		{"close is exclusive", 18 * time.Hour, false},
		{"after close", 20 * time.Hour, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := h.InWorkingHours(tc.timeOfDay); got != tc.want {
				t.Fatalf("InWorkingHours(%s) = %v, want %v", tc.timeOfDay, got, tc.want)
			}
		})
	}
}

func TestHoursValidate(t *testing.T) {
	if err := (DefaultHours()).Validate(); err != nil {
		t.Fatalf("Validate() on defaults: %v", err)
	}

	cases := []struct {
		name  string
		hours Hours
	}{
		{"open after close", Hours{Open: 18 * time.Hour, Close: 9 * time.Hour, Days: []time.Weekday{time.Monday}}},
		{"open equals close", Hours{Open: 9 * time.Hour, Close: 9 * time.Hour, Days: []time.Weekday{time.Monday}}},
		{"close past midnight", Hours{Open: 9 * time.Hour, Close: 25 * time.Hour, Days: []time.Weekday{time.Monday}}},
		{"no working days", Hours{Open: 9 * time.Hour, Close: 18 * time.Hour}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.hours.Validate(); err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
		})
	}
}

func TestHoursDisplay(t *testing.T) {
	if got, want := DefaultHours().Display(), "9:00 AM - 6:00 PM"; got != want {
		t.Fatalf("Display() = %q, want %q", got, want)
	}
}

func TestHoursDaysDisplay(t *testing.T) {
	if got, want := DefaultHours().DaysDisplay(), "Monday-Saturday"; got != want {
		t.Fatalf("DaysDisplay() = %q, want %q", got, want)
	}

	split := Hours{Days: []time.Weekday{time.Friday, time.Monday, time.Wednesday}}
	if got, want := split.DaysDisplay(), "Monday, Wednesday, Friday"; got != want {
		t.Fatalf("DaysDisplay() = %q, want %q", got, want)
	}
}

func TestTimeOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}

	at := time.Date(2026, 3, 2, 14, 30, 0, 0, loc)
	if got, want := TimeOfDay(at), 14*time.Hour+30*time.Minute; got != want {
		t.Fatalf("TimeOfDay = %s, want %s", got, want)
	}
}

func TestSlotGrid(t *testing.T) {
	h := DefaultHours()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

	grid := SlotGrid(day, h, 30*time.Minute)

	// 09:00 through 17:30 inclusive at 30 minute steps.
	if len(grid) != 18 {
		t.Fatalf("len(grid) = %d, want 18", len(grid))
	}
	if !grid[0].Equal(day.Add(9 * time.Hour)) {
		t.Fatalf("first slot = %s, want 09:00", grid[0])
	}
	if !grid[len(grid)-1].Equal(day.Add(17*time.Hour + 30*time.Minute)) {
		t.Fatalf("last slot = %s, want 17:30", grid[len(grid)-1])
	}
	for i := 1; i < len(grid); i++ {
		if got := grid[i].Sub(grid[i-1]); got != 30*time.Minute {
			t.Fatalf("grid step %d = %s, want 30m", i, got)
		}
	}
}

func TestSlotGridIgnoresTimeOfDayInput(t *testing.T) {
	h := DefaultHours()
	midnight := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	afternoon := time.Date(2026, 3, 2, 15, 42, 11, 0, time.UTC)

	a := SlotGrid(midnight, h, 30*time.Minute)
	b := SlotGrid(afternoon, h, 30*time.Minute)

	if len(a) != len(b) {
		t.Fatalf("grid lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("slot %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestSlotGridInvalidGranularity(t *testing.T) {
	if got := SlotGrid(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), DefaultHours(), 0); got != nil {
		t.Fatalf("SlotGrid with zero granularity = %v, want nil", got)
	}
}
