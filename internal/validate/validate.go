// Package validate turns raw user input into normalized values. Every
// rejection is a *Error whose Reason is shown to the user verbatim.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/pet-assistant/internal/model"
	"github.com/Tiliavir/pet-assistant/internal/timecalc"
)

// Kind classifies a rejection.
type Kind string

const (
	// KindInvalid covers empty, malformed, non-numeric and too-small input.
	KindInvalid Kind = "invalid"
	// KindImplausible is a well-formed number that is too large to be real.
	KindImplausible Kind = "implausible"
	// KindOutOfRange is a well-formed date outside the accepted years.
	KindOutOfRange Kind = "out_of_range"
)

// Accepted appointment and grooming years.
const (
	MinYear = 2025
	MaxYear = 2035
)

// Error is a user-correctable validation failure.
type Error struct {
	Field  string
	Kind   Kind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func invalid(field, reason string) *Error {
	return &Error{Field: field, Kind: KindInvalid, Reason: reason}
}

// Required trims s and rejects it with reason when nothing is left. A '|'
// is rejected as well since it would split the stored record.
func Required(field, s, reason string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, reason)
	}
	if strings.Contains(s, "|") {
		return "", invalid(field, fmt.Sprintf("%s must not contain '|'", field))
	}
	return s, nil
}

// Age accepts whole years in [1, 100].
func Age(s string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age < 1 {
		return 0, invalid("age", "Age must be at least 1 year!")
	}
	if age > 100 {
		return 0, &Error{Field: "age", Kind: KindImplausible, Reason: "What kind of pet do you have? That is too old!"}
	}
	return age, nil
}

// Weight accepts kilograms in the open interval (0, 1000).
func Weight(s string) (float64, error) {
	w, ok := parseFinite(s)
	if !ok || w <= 0 {
		return 0, invalid("weight", "Please enter a valid positive weight!")
	}
	if w >= 1000 {
		return 0, &Error{Field: "weight", Kind: KindImplausible, Reason: "What kind of pet do you have? That is too heavy!"}
	}
	return w, nil
}

// FeedAmount accepts a positive amount of food in kilograms.
func FeedAmount(s string) (float64, error) {
	a, ok := parseFinite(s)
	if !ok || a <= 0 {
		return 0, invalid("amount", "Amount is required and must be a positive number!")
	}
	return a, nil
}

// ExpenseAmount accepts a positive amount of money (RM).
func ExpenseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, invalid("amount", "Amount must be a positive number")
	}
	return d, nil
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// TimeOfDay accepts H:M text with hour 0-23 and minute 0-59 and returns it
// unchanged apart from surrounding whitespace.
func TimeOfDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("time", "No time entered.")
	}
	bad := invalid("time", "Invalid time format , Example: 23:59")

	parts := strings.Split(s, ":")
	if len(parts) != 2 || !allDigits(parts[0]) || !allDigits(parts[1]) {
		return "", bad
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour > 23 {
		return "", bad
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute > 59 {
		return "", bad
	}
	return s, nil
}

// Date checks a strict YYYY-MM-DD calendar date. Each failure has its own reason.
func Date(s string) (string, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "", invalid("date", "Format must be YYYY-MM-DD")
	}
	ys, ms, ds := parts[0], parts[1], parts[2]

	switch {
	case !allDigits(ys):
		return "", invalid("date", "Year must be a number")
	case !allDigits(ms):
		return "", invalid("date", "Month must be a number")
	case !allDigits(ds):
		return "", invalid("date", "Day must be a number")
	case len(ys) != 4:
		return "", invalid("date", "Year must be 4 digits")
	case len(ms) != 2:
		return "", invalid("date", "Month must be 2 digits")
	case len(ds) != 2:
		return "", invalid("date", "Day must be 2 digits")
	}

	year, _ := strconv.Atoi(ys)
	month, _ := strconv.Atoi(ms)
	day, _ := strconv.Atoi(ds)

	if month < 1 || month > 12 {
		return "", invalid("date", "Month must be 1-12")
	}
	if limit := timecalc.MaxDay(year, month); day < 1 || day > limit {
		return "", invalid("date", fmt.Sprintf("Invalid day. Max is %d", limit))
	}
	return s, nil
}

// DateTime checks a "YYYY-MM-DD HH:MM" timestamp in the accepted year range
// and returns the trimmed input.
func DateTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	t, err := timecalc.ParseDateTime(s, nil)
	if err != nil {
		return "", invalid("date", "Please enter format: YYYY-MM-DD HH:MM")
	}
	if t.Year() < MinYear || t.Year() > MaxYear {
		return "", &Error{Field: "date", Kind: KindOutOfRange, Reason: fmt.Sprintf("Year must be between %d and %d.", MinYear, MaxYear)}
	}
	return s, nil
}

// AppointmentDate builds a YYYY-MM-DD date from separately entered parts.
func AppointmentDate(year, month, day string) (string, error) {
	bad := invalid("date", "The date input is incorrect or not a number.")

	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return "", bad
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return "", bad
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return "", bad
	}
	if y < 1 || y > 9999 || !timecalc.ValidDate(y, m, d) {
		return "", bad
	}
	if y < MinYear || y > MaxYear {
		return "", &Error{Field: "date", Kind: KindOutOfRange, Reason: "The entered year is more than 10 years old or has expired."}
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), nil
}

// LetterName accepts names made of letters and spaces only.
func LetterName(s string) (string, error) {
	s, err := Required("name", s, "Name cannot be empty")
	if err != nil {
		return "", err
	}
	for _, r := range strings.ReplaceAll(s, " ", "") {
		if !unicode.IsLetter(r) {
			return "", invalid("name", "Name must be letters only")
		}
	}
	return s, nil
}

// Category matches s case-insensitively against the known expense categories.
func Category(s string) (model.Category, error) {
	c, ok := model.ParseCategory(s)
	if !ok {
		return "", invalid("category", fmt.Sprintf("Category must be one of %s", model.CategoryNames()))
	}
	return c, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
