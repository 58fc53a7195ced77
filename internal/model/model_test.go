package model_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/pet-assistant/internal/model"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "12.0"},
		{12.5, "12.5"},
		{0.1, "0.1"},
		{999.9, "999.9"},
	}
	for _, tt := range tests {
		got := model.FormatFloat(tt.in)
		if got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPetFullInfo(t *testing.T) {
	p := model.Pet{Name: "Milo", Age: 3, Weight: 4.2}
	if got, want := p.FullInfo(), "Milo | Age: 3 | Weight: 4.2kg"; got != want {
		t.Errorf("FullInfo without schedules = %q, want %q", got, want)
	}

	p.Schedules = []model.FeedingSchedule{
		{Time: "08:00", Food: "Kibble", Amount: 0.2},
		{Time: "18:30", Food: "Tuna", Amount: 0.1},
	}
	want := "Milo | Age: 3 | Weight: 4.2kg\n  Feeding Schedule:\n" +
		"  Time:08:00 - Food:Kibble Amount(0.2kg)\n" +
		"  Time:18:30 - Food:Tuna Amount(0.1kg)"
	if got := p.FullInfo(); got != want {
		t.Errorf("FullInfo = %q, want %q", got, want)
	}
}

func TestSplitGroomingLine(t *testing.T) {
	tests := []struct {
		row  string
		want model.GroomingEntry
	}{
		{"Milo|2025-05-20 13:14|Bath", model.GroomingEntry{Pet: "Milo", DateTime: "2025-05-20 13:14", Task: "Bath"}},
		{" Rex | 2025-06-01 09:00 | Nail trim | ears", model.GroomingEntry{Pet: "Rex", DateTime: "2025-06-01 09:00", Task: "Nail trim | ears"}},
		{"broken", model.GroomingEntry{Task: "broken"}},
	}
	for _, tt := range tests {
		got := model.SplitGroomingLine(tt.row)
		if got != tt.want {
			t.Errorf("SplitGroomingLine(%q) = %+v, want %+v", tt.row, got, tt.want)
		}
	}
}

func TestExpenseLine(t *testing.T) {
	e := model.ExpenseRecord{
		ID:       7,
		Date:     "2025-02-05",
		PetName:  "Milo",
		Category: model.CategoryMedical,
		Amount:   decimal.RequireFromString("12.5"),
	}
	if got, want := e.Line(), "7|2025-02-05|Milo|Medical|12.50"; got != want {
		t.Errorf("Line = %q, want %q", got, want)
	}
	if got, want := e.Display(), "7 | 2025-02-05 | Milo | Medical | RM 12.50"; got != want {
		t.Errorf("Display = %q, want %q", got, want)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   model.Category
		wantOK bool
	}{
		{"Food", model.CategoryFood, true},
		{"medical", model.CategoryMedical, true},
		{" GROOMING ", model.CategoryGrooming, true},
		{"Others", model.CategoryOthers, true},
		{"Toys", "", false},
	}
	for _, tt := range tests {
		got, ok := model.ParseCategory(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
