package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMissing(t *testing.T) {
	row := Row{"a": "x", "b": "", "c": "   "}

	assert.False(t, Missing(row, "a"))
	assert.True(t, Missing(row, "b"), "blank is missing")
	assert.True(t, Missing(row, "c"), "whitespace-only is missing")
	assert.True(t, Missing(row, "d"), "absent column is missing")
}

func TestNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 3.5 ", 3.5, true},
		{"-1", -1, true},
		{"1e2", 100, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
	}
	for _, c := range cases {
		got, ok := Number(c.in)
		assert.Equal(t, c.ok, ok, "Number(%q) ok", c.in)
		if ok {
			assert.Equal(t, c.want, got, "Number(%q)", c.in)
		}
	}
}

func TestDate_Layouts(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2024-03-15",
		"2024-03-15 10:30:00",
		"2024/03/15",
	} {
		got, ok := Date(in)
		assert.True(t, ok, "Date(%q)", in)
		assert.True(t, got.Equal(want), "Date(%q) = %v", in, got)
	}

	for _, in := range []string{"", "not-a-date", "15.03.2024"} {
		_, ok := Date(in)
		assert.False(t, ok, "Date(%q) should fail", in)
	}
}

func TestFormatDate_Canonical(t *testing.T) {
	d, ok := Date("2024/03/05")
	assert.True(t, ok)
	assert.Equal(t, "2024-03-05", FormatDate(d))
	assert.Equal(t, "2024-03", MonthKey(d))
}

func TestFormatNumber_ShortestForm(t *testing.T) {
	assert.Equal(t, "3", FormatNumber(3))
	assert.Equal(t, "3.5", FormatNumber(3.5))
	assert.Equal(t, "0.8", FormatNumber(0.8))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Northville", NormalizeText("  Northville "))
	// NFC: e + combining acute collapses to the precomposed form.
	assert.Equal(t, "Café", NormalizeText("Café"))
}
