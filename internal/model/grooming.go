package model

import (
	"fmt"
	"strings"
)

// GroomingEntry is one grooming appointment. DateTime keeps the text as
// entered ("YYYY-MM-DD HH:MM").
type GroomingEntry struct {
	Pet      string
	DateTime string
	Task     string
}

// Line returns the stored form "pet|date|task".
func (g GroomingEntry) Line() string {
	return g.Pet + "|" + g.DateTime + "|" + g.Task
}

// Display returns the list row, numbered from 1.
func (g GroomingEntry) Display(n int) string {
	return fmt.Sprintf("%d. %s | %s | %s", n, g.DateTime, g.Pet, g.Task)
}

// SplitGroomingLine splits a stored row into its three fields. A row that
// does not have three fields is returned whole as the task.
func SplitGroomingLine(row string) GroomingEntry {
	parts := strings.SplitN(row, "|", 3)
	if len(parts) != 3 {
		return GroomingEntry{Task: row}
	}
	return GroomingEntry{
		Pet:      strings.TrimSpace(parts[0]),
		DateTime: strings.TrimSpace(parts[1]),
		Task:     strings.TrimSpace(parts[2]),
	}
}
