package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is an expense category.
type Category string

const (
	CategoryFood     Category = "Food"
	CategoryMedical  Category = "Medical"
	CategoryGrooming Category = "Grooming"
	CategoryOthers   Category = "Others"
)

// Categories lists the categories in display order.
var Categories = []Category{CategoryFood, CategoryMedical, CategoryGrooming, CategoryOthers}

// ParseCategory matches s case-insensitively against Categories.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// CategoryNames returns the categories joined for help and error text.
func CategoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, "/")
}

// ExpenseRecord is one expense in RM. IDs are assigned as max+1 and are
// never reused after deletion.
type ExpenseRecord struct {
	ID       int
	Date     string
	PetName  string
	Category Category
	Amount   decimal.Decimal
}

// Line returns the stored form "id|date|name|category|amount".
func (e ExpenseRecord) Line() string {
	return fmt.Sprintf("%d|%s|%s|%s|%s", e.ID, e.Date, e.PetName, e.Category, e.Amount.StringFixed(2))
}

// Display returns the history row.
func (e ExpenseRecord) Display() string {
	return fmt.Sprintf("%d | %s | %s | %s | RM %s", e.ID, e.Date, e.PetName, e.Category, e.Amount.StringFixed(2))
}
