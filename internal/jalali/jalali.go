// Package jalali implements the calendar arithmetic used by the metrics
// engine. Dates are Jalali (solar hijri) with a fixed month-length table and
// 365-day years; leap years are deliberately ignored. This is a known
// approximation carried over from the product's original date handling and
// must not be corrected silently, because correcting it changes the hormonal
// phase shown to users.
package jalali

import (
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"

	"github.com/mehrnazbaharan/diabetes-companion/internal/numerals"
)

// monthDays is the fixed per-month day count. The last month is truncated to
// 29 days regardless of leap years.
var monthDays = [12]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}

const daysInYear = 365

// Date is a calendar date in the Jalali calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses a "YYYY/MM/DD" Jalali date string. Digit glyphs are
// normalized first, so localized input is accepted. Returns ok=false for
// anything malformed or out of the month-length table; it never panics.
func ParseDate(s string) (Date, bool) {
	parts := strings.Split(numerals.Normalize(strings.TrimSpace(s)), "/")
	if len(parts) != 3 {
		return Date{}, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return Date{}, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, false
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, false
	}
	if DayOfYear(m, d) == 0 {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d}, true
}

// String renders the date as "YYYY/MM/DD" with ASCII digits.
func (d Date) String() string {
	var b strings.Builder
	b.WriteString(pad(d.Year, 4))
	b.WriteByte('/')
	b.WriteString(pad(d.Month, 2))
	b.WriteByte('/')
	b.WriteString(pad(d.Day, 2))
	return b.String()
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// DayOfYear returns the 1-based ordinal of month/day within the fixed-length
// year, or 0 when the pair falls outside the table.
func DayOfYear(month, day int) int {
	if month < 1 || month > 12 || day < 1 || day > monthDays[month-1] {
		return 0
	}
	n := day
	for i := 0; i < month-1; i++ {
		n += monthDays[i]
	}
	return n
}

// Today converts the reference instant to a Jalali date.
func Today(now time.Time) Date {
	pt := ptime.New(now)
	return Date{Year: pt.Year(), Month: int(pt.Month()), Day: pt.Day()}
}

// DaysBetween returns the days elapsed from `from` to `to` under the
// fixed-length-year model. When `to` is in a later year the remainder of
// `from`'s year plus `to`'s day-of-year is used. Elapsed spans that come out
// negative or longer than a year are rejected as invalid rather than
// surfaced as an error.
func DaysBetween(from, to Date) (int, bool) {
	doyFrom := DayOfYear(from.Month, from.Day)
	doyTo := DayOfYear(to.Month, to.Day)
	if doyFrom == 0 || doyTo == 0 {
		return 0, false
	}

	var elapsed int
	switch {
	case to.Year > from.Year:
		elapsed = (daysInYear - doyFrom) + doyTo
	case to.Year == from.Year:
		elapsed = doyTo - doyFrom
	default:
		return 0, false
	}

	if elapsed < 0 || elapsed > daysInYear {
		return 0, false
	}
	return elapsed, true
}

// Age derives the subject's age in whole years by comparing Jalali calendar
// years only; month and day are not considered. Results outside [0,120) are
// treated as unknown, as are malformed birth-date strings.
func Age(birthDate string, now time.Time) (int, bool) {
	birthDate = numerals.Normalize(strings.TrimSpace(birthDate))
	if birthDate == "" || !strings.Contains(birthDate, "/") {
		return 0, false
	}
	birthYear, err := strconv.Atoi(strings.Split(birthDate, "/")[0])
	if err != nil {
		return 0, false
	}
	age := Today(now).Year - birthYear
	if age < 0 || age >= 120 {
		return 0, false
	}
	return age, true
}
