package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/pet-assistant/internal/model"
)

func expense(name string, amount string) model.ExpenseRecord {
	return model.ExpenseRecord{
		Date:     "2025-02-05",
		PetName:  name,
		Category: model.CategoryFood,
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestExpenseStoreFirstIDIsOne(t *testing.T) {
	s := NewExpenseStore(filepath.Join(t.TempDir(), "expenses_data.txt"))
	assert.Equal(t, 1, s.NextID())

	rec, err := s.Add(expense("Milo", "10"))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID)
}

func TestExpenseStoreIDsAreNotReused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses_data.txt")
	s := NewExpenseStore(path)

	for _, name := range []string{"Milo", "Rex", "Bun"} {
		_, err := s.Add(expense(name, "10"))
		require.NoError(t, err)
	}

	removed, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "Rex", removed.PetName)

	rec, err := s.Add(expense("Kiki", "5.5"))
	require.NoError(t, err)
	assert.Equal(t, 4, rec.ID)

	var ids []int
	for _, r := range s.Records() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{1, 3, 4}, ids)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"1|2025-02-05|Milo|Food|10.00\n3|2025-02-05|Bun|Food|10.00\n4|2025-02-05|Kiki|Food|5.50\n",
		string(data))
}

func TestExpenseStoreDeleteMissing(t *testing.T) {
	s := NewExpenseStore(filepath.Join(t.TempDir(), "expenses_data.txt"))
	_, err := s.Delete(9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseStorePreservesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses_data.txt")
	content := "1|2025-01-01|Milo|Food|abc\n2|2025-01-02|Rex|Medical|20.00|extra\nshort|line\nx|2025-01-03|Bad|Food|1.00\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s := NewExpenseStore(path)
	records := s.Records()
	require.Len(t, records, 2)
	assert.True(t, records[0].Amount.IsZero())

	_, err := s.Delete(1)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2|2025-01-02|Rex|Medical|20.00|extra\n", string(data))
}

func TestExpenseStoreSaveFailureIsPersistError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	s := NewExpenseStore(filepath.Join(blocker, "expenses_data.txt"))
	_, err := s.Add(expense("Milo", "10"))
	assert.ErrorIs(t, err, ErrPersist)
}

func TestFilterByNameAndTotal(t *testing.T) {
	records := []model.ExpenseRecord{
		expense("Milo", "10.10"),
		expense("Rex", "20"),
		expense("Milo Jr", "0.40"),
	}

	milo := FilterByName(records, "  MILO ")
	require.Len(t, milo, 2)
	assert.Equal(t, "10.50", Total(milo).StringFixed(2))

	assert.Len(t, FilterByName(records, ""), 3)
	assert.Equal(t, "30.50", Total(records).StringFixed(2))
	assert.Equal(t, "0.00", Total(nil).StringFixed(2))
}

func TestTotalsByCategory(t *testing.T) {
	food := expense("Milo", "10.50")
	vet := expense("Milo", "120")
	vet.Category = model.CategoryMedical
	food2 := expense("Rex", "4.25")
	odd := expense("Rex", "1")
	odd.Category = model.Category("Toys")

	totals := TotalsByCategory([]model.ExpenseRecord{odd, vet, food, food2})

	require.Len(t, totals, 3)
	assert.Equal(t, model.CategoryFood, totals[0].Category)
	assert.Equal(t, "14.75", totals[0].Total.StringFixed(2))
	assert.Equal(t, 2, totals[0].Count)
	assert.Equal(t, model.CategoryMedical, totals[1].Category)
	assert.Equal(t, model.Category("Toys"), totals[2].Category)
}

func TestTotalsByCategoryEmpty(t *testing.T) {
	assert.Empty(t, TotalsByCategory(nil))
}
