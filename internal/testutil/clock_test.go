package testutil

import (
	"testing"
	"time"
)

func TestFixedAt(t *testing.T) {
	c := FixedAt("2025-06-01")
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !c.Today().Equal(want) {
		t.Errorf("Today() = %v, want %v", c.Today(), want)
	}
}

func TestFixedAtPanicsOnBadInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	FixedAt("June 1st")
}
