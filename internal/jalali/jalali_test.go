package jalali

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-21 is 1403/04/01 in the Jalali calendar.
var refNow = time.Date(2024, time.June, 21, 12, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Date
		ok   bool
	}{
		{"ascii", "1403/05/01", Date{1403, 5, 1}, true},
		{"persian digits", "۱۴۰۳/۰۵/۰۱", Date{1403, 5, 1}, true},
		{"single digit month and day", "1403/5/1", Date{1403, 5, 1}, true},
		{"last day of year", "1402/12/29", Date{1402, 12, 29}, true},
		{"day past truncated last month", "1402/12/30", Date{}, false},
		{"month out of range", "1403/13/01", Date{}, false},
		{"garbled", "1403-05-01", Date{}, false},
		{"partial", "1403/05", Date{}, false},
		{"empty", "", Date{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDayOfYear(t *testing.T) {
	assert.Equal(t, 1, DayOfYear(1, 1))
	assert.Equal(t, 31, DayOfYear(1, 31))
	assert.Equal(t, 32, DayOfYear(2, 1))
	// Six 31-day months, then five 30-day months, then the truncated 29.
	assert.Equal(t, 186+150+29, DayOfYear(12, 29))
	assert.Equal(t, 0, DayOfYear(12, 30))
	assert.Equal(t, 0, DayOfYear(0, 1))
	assert.Equal(t, 0, DayOfYear(1, 0))
}

func TestDaysBetween(t *testing.T) {
	sameYear, ok := DaysBetween(Date{1403, 1, 10}, Date{1403, 1, 30})
	require.True(t, ok)
	assert.Equal(t, 20, sameYear)

	// Year rollover: remainder of the anchor year plus the current ordinal.
	rolled, ok := DaysBetween(Date{1402, 12, 20}, Date{1403, 1, 10})
	require.True(t, ok)
	assert.Equal(t, (365-DayOfYear(12, 20))+10, rolled)

	_, ok = DaysBetween(Date{1403, 2, 1}, Date{1403, 1, 1})
	assert.False(t, ok, "negative elapsed is invalid")

	_, ok = DaysBetween(Date{1404, 1, 1}, Date{1403, 1, 1})
	assert.False(t, ok, "anchor in a later year is invalid")

	_, ok = DaysBetween(Date{1402, 1, 1}, Date{1403, 12, 29})
	assert.False(t, ok, "spans over a year are invalid")
}

func TestToday(t *testing.T) {
	d := Today(refNow)
	assert.Equal(t, Date{1403, 4, 1}, d)
	assert.Equal(t, "1403/04/01", d.String())
}

func TestAge(t *testing.T) {
	age, ok := Age("1380/01/01", refNow)
	require.True(t, ok)
	assert.Equal(t, 23, age)

	// Localized digits yield the same result as ASCII.
	localized, ok := Age("۱۳۸۰/۰۱/۰۱", refNow)
	require.True(t, ok)
	assert.Equal(t, age, localized)

	_, ok = Age("", refNow)
	assert.False(t, ok)
	_, ok = Age("1380", refNow)
	assert.False(t, ok, "missing separator fails soft")
	_, ok = Age("abcd/01/01", refNow)
	assert.False(t, ok)
	_, ok = Age("1500/01/01", refNow)
	assert.False(t, ok, "birth year in the future")
	_, ok = Age("1200/01/01", refNow)
	assert.False(t, ok, "age of 120 or more is treated as unknown")
}
