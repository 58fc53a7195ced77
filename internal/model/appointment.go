package model

import (
	"fmt"
	"strconv"
)

// NoReason is stored when an appointment is saved without a reason note.
const NoReason = "null"

// AppointmentEntry is one vet appointment. ID always equals the 1-based
// line position after a save.
type AppointmentEntry struct {
	ID      int
	PetName string
	Date    string // YYYY-MM-DD
	Clinic  string
	Reason  string
}

// Fields returns the stored columns in file order.
func (a AppointmentEntry) Fields() []string {
	return []string{strconv.Itoa(a.ID), a.PetName, a.Date, a.Clinic, a.Reason}
}

// Display returns the two-line card text.
func (a AppointmentEntry) Display() string {
	return fmt.Sprintf("Pet: %s | Date: %s\nClinic: %s | Note: %s", a.PetName, a.Date, a.Clinic, a.Reason)
}
