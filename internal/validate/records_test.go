package validate_test

import (
	"testing"

	"github.com/Tiliavir/pet-assistant/internal/model"
	"github.com/Tiliavir/pet-assistant/internal/validate"
)

func TestPetChecksFieldsInOrder(t *testing.T) {
	tests := []struct {
		name, age, weight string
		reason            string
	}{
		{"", "x", "x", "Pet name is required!"},
		{"Milo", "0", "x", "Age must be at least 1 year!"},
		{"Milo", "101", "x", "What kind of pet do you have? That is too old!"},
		{"Milo", "3", "0", "Please enter a valid positive weight!"},
		{"Milo", "3", "1000", "What kind of pet do you have? That is too heavy!"},
	}
	for _, tt := range tests {
		_, err := validate.Pet(tt.name, tt.age, tt.weight)
		if err == nil {
			t.Errorf("Pet(%q, %q, %q) accepted", tt.name, tt.age, tt.weight)
			continue
		}
		if r := reasonOf(t, err); r != tt.reason {
			t.Errorf("Pet(%q, %q, %q) reason = %q, want %q", tt.name, tt.age, tt.weight, r, tt.reason)
		}
	}

	p, err := validate.Pet(" Milo ", "3", "4.2")
	if err != nil {
		t.Fatalf("Pet: %v", err)
	}
	if p.Name != "Milo" || p.Age != 3 || p.Weight != 4.2 {
		t.Errorf("Pet = %+v", p)
	}
}

func TestSchedule(t *testing.T) {
	s, err := validate.Schedule("08:00", "Kibble", "0.2")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if s != (model.FeedingSchedule{Time: "08:00", Food: "Kibble", Amount: 0.2}) {
		t.Errorf("Schedule = %+v", s)
	}

	if _, err := validate.Schedule("08:00", " ", "0.2"); err == nil || reasonOf(t, err) != "Food is required!" {
		t.Errorf("Schedule(no food) = %v", err)
	}
	if _, err := validate.Schedule("08:00", "Kibble", "-1"); err == nil {
		t.Error("Schedule accepted a negative amount")
	}
}

func TestGrooming(t *testing.T) {
	g, err := validate.Grooming("Milo", " 2025-05-20 13:14 ", "Bath")
	if err != nil {
		t.Fatalf("Grooming: %v", err)
	}
	if g.Line() != "Milo|2025-05-20 13:14|Bath" {
		t.Errorf("Grooming line = %q", g.Line())
	}
	if _, err := validate.Grooming("Milo", "bad", ""); err == nil || reasonOf(t, err) != "Grooming task cannot be empty." {
		t.Errorf("Grooming(no task) = %v, want task error first", err)
	}
}

func TestExpense(t *testing.T) {
	e, err := validate.Expense("Milo", "food", "12.5", "2025-02-05")
	if err != nil {
		t.Fatalf("Expense: %v", err)
	}
	if e.Category != model.CategoryFood || e.Amount.StringFixed(2) != "12.50" || e.Date != "2025-02-05" {
		t.Errorf("Expense = %+v", e)
	}
	if _, err := validate.Expense("Milo", "food", "0", "2025-02-05"); err == nil || reasonOf(t, err) != "Amount must be a positive number" {
		t.Errorf("Expense(zero amount) = %v", err)
	}
}

func TestAppointment(t *testing.T) {
	a, err := validate.Appointment("Milo", "2026", "1", "9", "Happy Paws", "")
	if err != nil {
		t.Fatalf("Appointment: %v", err)
	}
	if a.Date != "2026-01-09" || a.Reason != model.NoReason {
		t.Errorf("Appointment = %+v", a)
	}

	if _, err := validate.Appointment("Milo", "2026", "", "9", "Happy Paws", ""); err == nil {
		t.Error("Appointment accepted a missing month")
	}
	if _, err := validate.Appointment("", "2026", "1", "9", "Happy Paws", ""); err == nil {
		t.Error("Appointment accepted a missing pet name")
	}
}
