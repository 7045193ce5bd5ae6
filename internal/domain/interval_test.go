package domain

import (
	"testing"
	"time"
)

func TestIntervalOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "identical",
			a:    NewInterval(base, time.Hour),
			b:    NewInterval(base, time.Hour),
			want: true,
		},
		{
			name: "contained",
			a:    NewInterval(base, 2*time.Hour),
			b:    NewInterval(base.Add(30*time.Minute), time.Hour),
			want: true,
		},
		{
			name: "partial overlap",
			a:    NewInterval(base, time.Hour),
			b:    NewInterval(base.Add(30*time.Minute), time.Hour),
			want: true,
		},
		{
			name: "touching endpoints do not overlap",
			a:    NewInterval(base, 30*time.Minute),
			b:    NewInterval(base.Add(30*time.Minute), 30*time.Minute),
			want: false,
		},
		{
			name: "disjoint",
			a:    NewInterval(base, 30*time.Minute),
			b:    NewInterval(base.Add(2*time.Hour), 30*time.Minute),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Fatalf("Overlaps(a, b) = %v, want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Fatalf("Overlaps(b, a) = %v, want %v (symmetry)", got, tc.want)
			}
		})
	}
}

func TestOccupied(t *testing.T) {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	busy := []Interval{
		NewInterval(base.Add(10*time.Hour), time.Hour), // 10:00-11:00
	}

	cases := []struct {
		name     string
		start    time.Time
		duration time.Duration
		want     bool
	}{
		{"well before", base.Add(9 * time.Hour), 30 * time.Minute, false},
		{"ends exactly at busy start", base.Add(9*time.Hour + 30*time.Minute), 30 * time.Minute, false},
		{"starts inside", base.Add(10*time.Hour + 30*time.Minute), 30 * time.Minute, true},
		{"spans across", base.Add(10*time.Hour + 30*time.Minute), time.Hour, true},
		{"starts exactly at busy end", base.Add(11 * time.Hour), 30 * time.Minute, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Occupied(tc.start, tc.duration, busy); got != tc.want {
				t.Fatalf("Occupied(%s, %s) = %v, want %v", tc.start, tc.duration, got, tc.want)
			}
		})
	}

	if Occupied(base.Add(10*time.Hour), 30*time.Minute, nil) {
		t.Fatalf("Occupied with no busy intervals = true, want false")
	}
}
