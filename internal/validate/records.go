package validate

import (
	"strings"

	"github.com/Tiliavir/pet-assistant/internal/model"
)

// Pet validates the pet form: name, then age, then weight.
func Pet(name, age, weight string) (model.Pet, error) {
	n, err := Required("name", name, "Pet name is required!")
	if err != nil {
		return model.Pet{}, err
	}
	a, err := Age(age)
	if err != nil {
		return model.Pet{}, err
	}
	w, err := Weight(weight)
	if err != nil {
		return model.Pet{}, err
	}
	return model.Pet{Name: n, Age: a, Weight: w}, nil
}

// Schedule validates a feeding schedule: time, then food, then amount.
func Schedule(timeOfDay, food, amount string) (model.FeedingSchedule, error) {
	t, err := TimeOfDay(timeOfDay)
	if err != nil {
		return model.FeedingSchedule{}, err
	}
	f, err := Required("food", food, "Food is required!")
	if err != nil {
		return model.FeedingSchedule{}, err
	}
	a, err := FeedAmount(amount)
	if err != nil {
		return model.FeedingSchedule{}, err
	}
	return model.FeedingSchedule{Time: t, Food: f, Amount: a}, nil
}

// Grooming validates pet and task before the timestamp.
func Grooming(pet, dateTime, task string) (model.GroomingEntry, error) {
	p, err := Required("pet", pet, "Pet name cannot be empty.")
	if err != nil {
		return model.GroomingEntry{}, err
	}
	t, err := Required("task", task, "Grooming task cannot be empty.")
	if err != nil {
		return model.GroomingEntry{}, err
	}
	dt, err := DateTime(dateTime)
	if err != nil {
		return model.GroomingEntry{}, err
	}
	return model.GroomingEntry{Pet: p, DateTime: dt, Task: t}, nil
}

// Expense validates the expense form. The ID is left for the store to assign.
func Expense(name, category, amount, date string) (model.ExpenseRecord, error) {
	n, err := LetterName(name)
	if err != nil {
		return model.ExpenseRecord{}, err
	}
	c, err := Category(category)
	if err != nil {
		return model.ExpenseRecord{}, err
	}
	a, err := ExpenseAmount(amount)
	if err != nil {
		return model.ExpenseRecord{}, err
	}
	d, err := Date(date)
	if err != nil {
		return model.ExpenseRecord{}, err
	}
	return model.ExpenseRecord{Date: d, PetName: n, Category: c, Amount: a}, nil
}

// Appointment validates the vet appointment form. A blank reason is stored
// as model.NoReason.
func Appointment(pet, year, month, day, clinic, reason string) (model.AppointmentEntry, error) {
	const missing = "The required field is empty.\n Please re-enter!"
	for _, s := range []string{pet, clinic, year, month, day} {
		if strings.TrimSpace(s) == "" {
			return model.AppointmentEntry{}, invalid("required", missing)
		}
	}
	p, err := Required("pet", pet, missing)
	if err != nil {
		return model.AppointmentEntry{}, err
	}
	c, err := Required("clinic", clinic, missing)
	if err != nil {
		return model.AppointmentEntry{}, err
	}
	d, err := AppointmentDate(year, month, day)
	if err != nil {
		return model.AppointmentEntry{}, err
	}

	r := strings.TrimSpace(reason)
	if r == "" {
		r = model.NoReason
	} else if strings.Contains(r, "|") {
		return model.AppointmentEntry{}, invalid("reason", "reason must not contain '|'")
	}
	return model.AppointmentEntry{PetName: p, Date: d, Clinic: c, Reason: r}, nil
}
