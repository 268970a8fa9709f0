package schedule

import (
	"testing"
	"time"
)

func TestDeparture(t *testing.T) {
	dep, err := Departure("2026-09-15", "14:30")
	if err != nil {
		t.Fatalf("Departure() error = %v", err)
	}
	want := time.Date(2026, 9, 15, 14, 30, 0, 0, time.Local)
	if !dep.Equal(want) {
		t.Errorf("Departure() = %v, want %v", dep, want)
	}

	if _, err := Departure("15-09-2026", "14:30"); err == nil {
		t.Error("Departure() with bad date should error")
	}
	if _, err := Departure("2026-09-15", "2:30pm"); err == nil {
		t.Error("Departure() with bad time should error")
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		departure time.Time
		want      Bucket
	}{
		{"Future", now.Add(2 * time.Hour), BucketUpcoming},
		{"Exactly now", now, BucketUpcoming},
		{"One second ago", now.Add(-time.Second), BucketPast},
		{"Yesterday", now.Add(-24 * time.Hour), BucketPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.departure, now); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithinLockWindow(t *testing.T) {
	departure := time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local)
	window := 30 * time.Minute

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"Ten minutes before", departure.Add(-10 * time.Minute), true},
		{"One second before", departure.Add(-time.Second), true},
		{"Just inside the window", departure.Add(-window).Add(time.Second), true},
		{"Exactly at the window boundary", departure.Add(-window), false},
		{"One second outside", departure.Add(-window).Add(-time.Second), false},
		{"Forty minutes before", departure.Add(-40 * time.Minute), false},
		{"At departure", departure, false},
		{"After departure", departure.Add(5 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinLockWindow(departure, tt.now, window); got != tt.want {
				t.Errorf("WithinLockWindow(now=%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestUnderway(t *testing.T) {
	departure := time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local)

	if Underway(departure, departure.Add(-time.Minute)) {
		t.Error("Underway() before departure should be false")
	}
	if !Underway(departure, departure) {
		t.Error("Underway() at departure should be true")
	}
	if !Underway(departure, departure.Add(time.Hour)) {
		t.Error("Underway() after departure should be true")
	}
}
