package timecalc

import (
	"time"
)

// Date and timestamp layouts used in the data files.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"

	// DateTimeInputLayout also accepts one-digit month, day, hour and minute.
	DateTimeInputLayout = "2006-1-2 15:4"
)

// ParseDateTime parses a grooming timestamp in loc. A nil loc means UTC.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateTimeInputLayout, s, loc)
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// MaxDay returns the number of days in month (1-12) of year.
func MaxDay(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// ValidDate reports whether year, month and day name a real calendar day.
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= MaxDay(year, month)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// NextDay returns midnight of the following day.
func NextDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, t.Location())
}

// InRange reports whether t lies in [from, to].
func InRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
