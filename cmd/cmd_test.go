package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Tiliavir/pet-assistant/internal/storage"
	"github.com/Tiliavir/pet-assistant/internal/validate"
)

// resetFlags restores every flag to its default so runs do not leak into
// each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the pet command with its data in dir.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(dir, "config.yaml"), "--data-dir", dir))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, args...)
	if err != nil {
		t.Fatalf("pet %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func fixClock(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &validate.Error{Field: "age", Reason: "Age must be at least 1 year!"}, 1},
		{"wrapped validation", fmt.Errorf("form: %w", &validate.Error{}), 1},
		{"persist", fmt.Errorf("%w: disk full", storage.ErrPersist), 2},
		{"storage", storageError(errors.New("rename failed")), 2},
		{"user", userError(errors.New("bad number")), 1},
		{"missing record", storeErr(fmt.Errorf("%w: pet 3", storage.ErrNoPet)), 1},
		{"store write", storeErr(errors.New("read-only file system")), 2},
		{"other", errors.New("unknown command"), 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("%s: exitCode = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{" 12 ", 11, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"two", 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex(tt.arg, "pet")
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndex(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIndex(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFeedingCommands(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "feeding", "add-pet", "--name", "Milo", "--age", "3", "--weight", "4.5")
	mustRun(t, dir, "feeding", "add-schedule", "1", "--time", "08:00", "--food", "Kibble", "--amount", "0.2")

	out := mustRun(t, dir, "feeding", "list")
	if !strings.Contains(out, "1. Milo | Age: 3 | Weight: 4.5kg") {
		t.Errorf("list output = %q", out)
	}
	out = mustRun(t, dir, "feeding", "list", "--full")
	if !strings.Contains(out, "Time:08:00 - Food:Kibble Amount(0.2kg)") {
		t.Errorf("list --full output = %q", out)
	}
	out = mustRun(t, dir, "feeding", "list", "--pet", "1")
	if !strings.Contains(out, "1. 08:00 | Kibble | 0.2kg") {
		t.Errorf("list --pet output = %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "feeding_data.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "PET|Milo|3|4.5\nSCHEDULE|08:00|Kibble|0.2\n\n"; string(data) != want {
		t.Errorf("feeding file = %q, want %q", data, want)
	}

	mustRun(t, dir, "feeding", "delete-schedule", "1", "1")
	mustRun(t, dir, "feeding", "delete-pet", "1")
	out = mustRun(t, dir, "feeding", "list")
	if !strings.Contains(out, "No pets found.") {
		t.Errorf("list after delete = %q", out)
	}
}

func TestFeedingRejectsInvalidInput(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "feeding", "add-pet", "--name", "Milo", "--age", "0", "--weight", "4")
	if err == nil || err.Error() != "Age must be at least 1 year!" {
		t.Fatalf("add-pet error = %v", err)
	}
	if exitCode(err) != 1 {
		t.Errorf("exitCode = %d, want 1", exitCode(err))
	}

	_, err = runCLI(t, dir, "feeding", "add-schedule", "1", "--time", "08:00", "--food", "Kibble", "--amount", "1")
	if !errors.Is(err, storage.ErrNoPet) {
		t.Errorf("add-schedule without pet error = %v, want ErrNoPet", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "feeding_data.txt")); !os.IsNotExist(err) {
		t.Errorf("rejected input must not create the data file: %v", err)
	}
}

func TestGroomingCommands(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "grooming", "add", "--pet", "Milo", "--datetime", "2026-03-12 14:30", "--task", "Bath")
	mustRun(t, dir, "grooming", "add", "--pet", "Rex", "--datetime", "2026-03-13 09:00", "--task", "Nail trim")

	out := mustRun(t, dir, "grooming", "list")
	if !strings.Contains(out, "1. 2026-03-12 14:30 | Milo | Bath") || !strings.Contains(out, "2. 2026-03-13 09:00 | Rex | Nail trim") {
		t.Errorf("list output = %q", out)
	}

	mustRun(t, dir, "grooming", "update", "2", "--pet", "Rex", "--datetime", "2026-03-14 10:00", "--task", "Haircut")
	mustRun(t, dir, "grooming", "delete", "1")
	out = mustRun(t, dir, "grooming", "list")
	if want := "1. 2026-03-14 10:00 | Rex | Haircut\n"; out != want {
		t.Errorf("list output = %q, want %q", out, want)
	}

	_, err := runCLI(t, dir, "grooming", "delete", "5")
	if !errors.Is(err, storage.ErrNotFound) || exitCode(err) != 1 {
		t.Errorf("delete out of range: err = %v, exit = %d", err, exitCode(err))
	}
}

func TestGroomingAddDefaultsToNow(t *testing.T) {
	dir := t.TempDir()
	fixClock(t, time.Date(2026, 4, 2, 16, 5, 0, 0, time.Local))

	mustRun(t, dir, "grooming", "add", "--pet", "Milo", "--task", "Brushing")
	out := mustRun(t, dir, "grooming", "list")
	if !strings.Contains(out, "1. 2026-04-02 16:05 | Milo | Brushing") {
		t.Errorf("list output = %q", out)
	}
}

func TestGroomingRejectsYearOutOfRange(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "grooming", "add", "--pet", "Milo", "--datetime", "2040-01-01 10:00", "--task", "Bath")
	var ve *validate.Error
	if !errors.As(err, &ve) || ve.Kind != validate.KindOutOfRange {
		t.Errorf("err = %v, want out-of-range validation error", err)
	}
}

func TestExpenseCommands(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "expense", "add", "--name", "Milo", "--category", "food", "--amount", "10.5", "--date", "2025-02-05")
	mustRun(t, dir, "expense", "add", "--name", "Rex", "--category", "Medical", "--amount", "20", "--date", "2025-02-06")

	out := mustRun(t, dir, "expense", "list")
	if !strings.Contains(out, "1 | 2025-02-05 | Milo | Food | RM 10.50") || !strings.Contains(out, "Total: RM 30.50") {
		t.Errorf("list output = %q", out)
	}
	out = mustRun(t, dir, "expense", "list", "--filter", "rex")
	if strings.Contains(out, "Milo") || !strings.Contains(out, "Total: RM 20.00") {
		t.Errorf("filtered list output = %q", out)
	}

	mustRun(t, dir, "expense", "add", "--name", "Kit", "--category", "Grooming", "--amount", "5", "--date", "2025-02-06")
	mustRun(t, dir, "expense", "delete", "2")
	mustRun(t, dir, "expense", "add", "--name", "Bun", "--category", "Others", "--amount", "3", "--date", "2025-02-07")
	out = mustRun(t, dir, "expense", "list")
	if !strings.Contains(out, "4 | 2025-02-07 | Bun | Others | RM 3.00") {
		t.Errorf("IDs must not be reused: %q", out)
	}

	out = mustRun(t, dir, "expense", "export")
	if want := "id,date,pet_name,category,amount_rm\n1,2025-02-05,Milo,Food,10.50\n3,2025-02-06,Kit,Grooming,5.00\n4,2025-02-07,Bun,Others,3.00\n"; out != want {
		t.Errorf("export = %q, want %q", out, want)
	}
	out = mustRun(t, dir, "expense", "report")
	if !strings.Contains(out, "RM 10.50") || !strings.Contains(out, "RM 18.50") {
		t.Errorf("report = %q", out)
	}

	_, err := runCLI(t, dir, "expense", "delete", "2")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("deleting a removed ID: err = %v", err)
	}
}

func TestExpenseListEmpty(t *testing.T) {
	out := mustRun(t, t.TempDir(), "expense", "list")
	if want := "No expenses found.\nTotal: RM 0.00\n"; out != want {
		t.Errorf("list = %q, want %q", out, want)
	}
}

func TestVetListPaging(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "vet", "list")
	if want := "Vet Appointment Data is Null\n"; out != want {
		t.Errorf("empty list = %q, want %q", out, want)
	}

	for i := 1; i <= 7; i++ {
		mustRun(t, dir, "vet", "add", "--pet", fmt.Sprintf("Pet%c", 'A'+i-1), "--year", "2026", "--month", "3", "--day", fmt.Sprint(i), "--clinic", "Happy Paws")
	}

	out = mustRun(t, dir, "vet", "list")
	if !strings.Contains(out, "6. Pet: PetF | Date: 2026-03-06") || strings.Contains(out, "PetG") || !strings.Contains(out, "Page 1 of 2") {
		t.Errorf("page 1 = %q", out)
	}
	out = mustRun(t, dir, "vet", "list", "--page", "2")
	if !strings.Contains(out, "7. Pet: PetG | Date: 2026-03-07") || !strings.Contains(out, "Clinic: Happy Paws | Note: null") || !strings.Contains(out, "Page 2 of 2") {
		t.Errorf("page 2 = %q", out)
	}
	out = mustRun(t, dir, "vet", "list", "--page", "9")
	if !strings.Contains(out, "Page 9 does not exist, showing page 2 of 2.") || !strings.Contains(out, "7. Pet: PetG") {
		t.Errorf("page past the end should clamp with a notice: %q", out)
	}
	out = mustRun(t, dir, "vet", "list", "--page", "0")
	if !strings.Contains(out, "Page 0 does not exist, showing page 1 of 2.") || !strings.Contains(out, "1. Pet: PetA") {
		t.Errorf("page before the start should clamp with a notice: %q", out)
	}
	out = mustRun(t, dir, "vet", "list", "--page", "2")
	if strings.Contains(out, "does not exist") {
		t.Errorf("valid page must not print a notice: %q", out)
	}

	// Deleting row 1 of page 2 removes the 7th appointment.
	mustRun(t, dir, "vet", "delete", "--page", "2", "--row", "1")
	out = mustRun(t, dir, "vet", "list")
	if strings.Contains(out, "PetG") || !strings.Contains(out, "Page 1 of 1") {
		t.Errorf("after delete = %q", out)
	}

	// Deleting the 3rd renumbers the rest.
	mustRun(t, dir, "vet", "delete", "3")
	data, err := os.ReadFile(filepath.Join(dir, "appointment_data.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 || !strings.HasPrefix(lines[2], "3|PetD|") || !strings.HasPrefix(lines[4], "5|PetF|") {
		t.Errorf("appointment file = %q", data)
	}
}

func TestVetAddDefaultsToToday(t *testing.T) {
	dir := t.TempDir()
	fixClock(t, time.Date(2026, 5, 4, 9, 0, 0, 0, time.Local))

	mustRun(t, dir, "vet", "add", "--pet", "Milo", "--clinic", "Happy Paws", "--reason", "checkup")
	data, err := os.ReadFile(filepath.Join(dir, "appointment_data.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "1|Milo|2026-05-04|Happy Paws|checkup\n"; string(data) != want {
		t.Errorf("appointment file = %q, want %q", data, want)
	}
}

func TestVetAddMissingField(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "vet", "add", "--pet", "Milo", "--year", "2026", "--month", "3", "--day", "1")
	if err == nil || !strings.HasPrefix(err.Error(), "The required field is empty.") {
		t.Errorf("err = %v", err)
	}
}

func TestVetEditKeepsUnsetFields(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "vet", "add", "--pet", "Milo", "--year", "2026", "--month", "03", "--day", "10", "--clinic", "Happy Paws")
	mustRun(t, dir, "vet", "edit", "1", "--clinic", "City Vet", "--reason", "vaccination")

	data, err := os.ReadFile(filepath.Join(dir, "appointment_data.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "1|Milo|2026-03-10|City Vet|vaccination\n"; string(data) != want {
		t.Errorf("appointment file = %q, want %q", data, want)
	}

	_, err = runCLI(t, dir, "vet", "edit", "1", "--year", "2040")
	var ve *validate.Error
	if !errors.As(err, &ve) || ve.Kind != validate.KindOutOfRange {
		t.Errorf("edit with bad year: err = %v", err)
	}
}

func TestDeleteIndex(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		page    int
		row     int
		want    int
		wantErr bool
	}{
		{"positional", []string{"4"}, 0, 0, 3, false},
		{"page and row", nil, 2, 3, 8, false},
		{"both", []string{"1"}, 1, 1, 0, true},
		{"neither", nil, 0, 0, 0, true},
		{"row past page", nil, 1, 7, 0, true},
	}
	for _, tt := range tests {
		got, err := deleteIndex(tt.args, tt.page, tt.row)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%s: index = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSyncWindow(t *testing.T) {
	today := time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC)

	from, to, err := syncWindow("", "", today, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC); !from.Equal(want) {
		t.Errorf("default from = %v, want %v", from, want)
	}
	if want := time.Date(2026, 6, 13, 23, 59, 59, 0, time.UTC); !to.Equal(want) {
		t.Errorf("default to = %v, want %v", to, want)
	}

	from, to, err = syncWindow("2026-04-01", "2026-04-30", today, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if from.Format("2006-01-02") != "2026-04-01" || to.Format("2006-01-02 15:04") != "2026-04-30 23:59" {
		t.Errorf("window = %v .. %v", from, to)
	}

	if _, _, err := syncWindow("2026-04-30", "2026-04-01", today, time.UTC); err == nil {
		t.Error("expected error for --to before --from")
	}
	if _, _, err := syncWindow("01/04/2026", "", today, time.UTC); err == nil {
		t.Error("expected error for malformed --from")
	}
}
