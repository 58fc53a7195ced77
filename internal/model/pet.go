package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Pet is a pet tracked by the feeding module. Schedules are owned by the pet
// and only become durable when the whole feeding file is saved.
type Pet struct {
	Name      string
	Age       int
	Weight    float64 // kg
	Schedules []FeedingSchedule
}

// FeedingSchedule is one daily feeding. Time is kept as entered ("HH:MM").
type FeedingSchedule struct {
	Time   string
	Food   string
	Amount float64 // kg
}

// Info returns the one-line summary shown in the pet list.
func (p Pet) Info() string {
	return fmt.Sprintf("%s | Age: %d | Weight: %skg", p.Name, p.Age, FormatFloat(p.Weight))
}

// FullInfo returns Info followed by the pet's feeding schedule, if any.
func (p Pet) FullInfo() string {
	info := p.Info()
	if len(p.Schedules) == 0 {
		return info
	}
	rows := make([]string, 0, len(p.Schedules))
	for _, s := range p.Schedules {
		rows = append(rows, fmt.Sprintf("Time:%s - Food:%s Amount(%skg)", s.Time, s.Food, FormatFloat(s.Amount)))
	}
	return info + "\n  Feeding Schedule:\n  " + strings.Join(rows, "\n  ")
}

// Row returns the schedule as shown in the schedule list.
func (s FeedingSchedule) Row() string {
	return fmt.Sprintf("%s | %s | %skg", s.Time, s.Food, FormatFloat(s.Amount))
}

// FormatFloat renders f with the shortest exact representation, always
// keeping a fractional part ("12" becomes "12.0").
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
