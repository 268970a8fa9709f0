// Package schedule classifies rides against wall-clock time. All checks are
// computed at read time; nothing transitions on a timer.
package schedule

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// DefaultLockWindow is the pre-departure period during which approved
	// requests can no longer be cancelled or removed.
	DefaultLockWindow = 30 * time.Minute
)

// Bucket is a temporal classification of a ride.
type Bucket string

const (
	BucketUpcoming Bucket = "upcoming"
	BucketPast     Bucket = "past"
)

// Departure combines a ride's date and time strings into a single instant
// in the local timezone.
func Departure(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ride date %q: %w", date, err)
	}
	t, err := time.ParseInLocation(TimeLayout, clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ride time %q: %w", clock, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// Classify buckets a ride as upcoming iff it departs at or after now.
func Classify(departure, now time.Time) Bucket {
	if departure.Before(now) {
		return BucketPast
	}
	return BucketUpcoming
}

// WithinLockWindow reports whether now falls strictly inside the lock window
// before departure: 0 < departure-now < window. At exactly the window
// boundary the operation is still allowed, and once the ride has departed
// the window no longer applies.
func WithinLockWindow(departure, now time.Time, window time.Duration) bool {
	until := departure.Sub(now)
	return until > 0 && until < window
}

// Underway reports whether the ride has departed.
func Underway(departure, now time.Time) bool {
	return !departure.After(now)
}
