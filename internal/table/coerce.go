package table

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the canonical serialization for any date written by the core.
const DateLayout = "2006-01-02"

// MonthLayout is the canonical month-bucket key format.
const MonthLayout = "2006-01"

// TimestampLayout is used for audit timestamps such as rejected_at.
const TimestampLayout = "2006-01-02 15:04:05"

// dateLayouts are the accepted input formats, tried in order.
var dateLayouts = []string{
	DateLayout,
	TimestampLayout,
	time.RFC3339,
	"2006/01/02",
}

// Missing reports whether a column is absent or blank in the row.
// A coercion failure elsewhere never counts as missing - only the raw
// field being empty does, mirroring a null cell in the source batch.
func Missing(r Row, col string) bool {
	v, ok := r[col]
	if !ok {
		return true
	}
	return strings.TrimSpace(v) == ""
}

// Number parses a scalar as a float. ok=false means the value is absent
// or not numeric; callers treat that the same as an out-of-range value.
func Number(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Date parses a scalar as a calendar date, trying each accepted layout.
// The time component, if any, is discarded.
func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Truncate(24 * time.Hour), true
		}
	}
	return time.Time{}, false
}

// FormatDate serializes a date in the canonical YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey returns the canonical YYYY-MM bucket for a date.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// FormatNumber serializes a float in its shortest decimal form, so that
// "3", "3.0" and " 3 " all normalize to "3" in accepted output.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// NormalizeText trims and NFC-normalizes free-text fields (city names)
// so that byte-level variants of the same text compare equal downstream.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
