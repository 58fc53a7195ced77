package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Tiliavir/pet-assistant/internal/log"
	"github.com/Tiliavir/pet-assistant/internal/model"
)

// expenseRow keeps the stored fields so a rewrite reproduces them verbatim.
type expenseRow struct {
	fields []string
	record model.ExpenseRecord
}

// ExpenseStore reads the expense file on every operation. IDs are
// max(existing)+1 and are never renumbered or reused.
type ExpenseStore struct {
	path string
	log  zerolog.Logger
}

// NewExpenseStore creates a store for path.
func NewExpenseStore(path string) *ExpenseStore {
	return &ExpenseStore{path: path, log: log.WithFile("expense", path)}
}

func (s *ExpenseStore) load() []expenseRow {
	lines, err := ReadLines(s.path)
	if err != nil {
		s.log.Warn().Err(err).Msg("treating unreadable expense file as empty")
		return nil
	}

	var rows []expenseRow
	for i, l := range lines {
		parts := SplitFields(l)
		if len(parts) < 5 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			s.log.Warn().Err(err).Int("line", i+1).Msg("skipping expense with bad id")
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(parts[4]))
		if err != nil {
			amount = decimal.Zero
		}
		rows = append(rows, expenseRow{
			fields: parts,
			record: model.ExpenseRecord{
				ID:       id,
				Date:     parts[1],
				PetName:  parts[2],
				Category: model.Category(parts[3]),
				Amount:   amount,
			},
		})
	}
	return rows
}

// Records returns every stored expense in file order.
func (s *ExpenseStore) Records() []model.ExpenseRecord {
	rows := s.load()
	out := make([]model.ExpenseRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record
	}
	return out
}

// NextID returns the ID the next added record will get.
func (s *ExpenseStore) NextID() int {
	return nextExpenseID(s.load())
}

func nextExpenseID(rows []expenseRow) int {
	maxID := 0
	for _, r := range rows {
		if r.record.ID > maxID {
			maxID = r.record.ID
		}
	}
	return maxID + 1
}

// Add assigns the next ID to e and appends it to the file.
func (s *ExpenseStore) Add(e model.ExpenseRecord) (model.ExpenseRecord, error) {
	e.ID = nextExpenseID(s.load())
	if err := AppendLine(s.path, e.Line()); err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.log.Debug().Int("id", e.ID).Msg("added")
	return e, nil
}

// Delete removes the record with id and rewrites the file.
func (s *ExpenseStore) Delete(id int) (model.ExpenseRecord, error) {
	rows := s.load()
	for i, r := range rows {
		if r.record.ID != id {
			continue
		}
		rows = append(rows[:i], rows[i+1:]...)
		lines := make([]string, len(rows))
		for j, kept := range rows {
			lines[j] = JoinFields(kept.fields...)
		}
		if err := WriteLines(s.path, lines); err != nil {
			return model.ExpenseRecord{}, fmt.Errorf("%w: %w", ErrPersist, err)
		}
		s.log.Debug().Int("id", id).Msg("deleted")
		return r.record, nil
	}
	return model.ExpenseRecord{}, fmt.Errorf("%w: expense %d", ErrNotFound, id)
}

// FilterByName keeps records whose pet name contains name, ignoring case.
// An empty name keeps everything.
func FilterByName(records []model.ExpenseRecord, name string) []model.ExpenseRecord {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return records
	}
	var out []model.ExpenseRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.PetName), name) {
			out = append(out, r)
		}
	}
	return out
}

// Total sums the amounts of records.
func Total(records []model.ExpenseRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Amount)
	}
	return sum
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category model.Category
	Total    decimal.Decimal
	Count    int
}

// TotalsByCategory sums records per category in model.Categories order.
// Categories without records are left out.
func TotalsByCategory(records []model.ExpenseRecord) []CategoryTotal {
	sums := make(map[model.Category]*CategoryTotal, len(model.Categories))
	for _, r := range records {
		t, ok := sums[r.Category]
		if !ok {
			t = &CategoryTotal{Category: r.Category, Total: decimal.Zero}
			sums[r.Category] = t
		}
		t.Total = t.Total.Add(r.Amount)
		t.Count++
	}
	var out []CategoryTotal
	for _, c := range model.Categories {
		if t, ok := sums[c]; ok {
			out = append(out, *t)
			delete(sums, c)
		}
	}
	// Categories read from a hand-edited file go last.
	for _, r := range records {
		if t, ok := sums[r.Category]; ok {
			out = append(out, *t)
			delete(sums, r.Category)
		}
	}
	return out
}
