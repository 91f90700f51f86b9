// Package testutil provides deterministic test helpers shared across
// packages.
package testutil

import "time"

// FixedClock pins "today" to a constant date so date-in-the-future rules
// behave identically on every run.
type FixedClock struct {
	Day time.Time
}

// FixedAt builds a FixedClock from a YYYY-MM-DD string.
// Panics on a malformed date; test setup only.
func FixedAt(day string) FixedClock {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return FixedClock{Day: t}
}

// Today returns the pinned date.
func (c FixedClock) Today() time.Time {
	return c.Day
}
