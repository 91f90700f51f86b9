package rules

import "time"

// Clock supplies "today" for date-in-the-future checks.
// Injected rather than read ambiently so rule sets stay deterministic
// under test. Implemented by SystemClock (production) and
// testutil.FixedClock (tests).
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock, truncated to a calendar date in UTC.
type SystemClock struct{}

// Today returns the current UTC date at midnight.
func (SystemClock) Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
