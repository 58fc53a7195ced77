package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/pet-assistant/internal/model"
	"github.com/Tiliavir/pet-assistant/internal/storage"
	"github.com/Tiliavir/pet-assistant/internal/validate"
)

var (
	expenseFilter   string
	expenseName     string
	expenseCategory string
	expenseAmount   string
	expenseDate     string
	exportFormat    string
	reportFormat    string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Track pet expenses (RM)",
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses with their total",
	Args:  cobra.NoArgs,
	RunE:  runExpenseList,
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Args:  cobra.NoArgs,
	RunE:  runExpenseAdd,
}

var expenseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseDelete,
}

var expenseExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExpenseExport,
}

var expenseReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show expense totals per category",
	Args:  cobra.NoArgs,
	RunE:  runExpenseReport,
}

func init() {
	for _, c := range []*cobra.Command{expenseListCmd, expenseExportCmd, expenseReportCmd} {
		c.Flags().StringVar(&expenseFilter, "filter", "", "Only include expenses whose pet name contains this text")
	}
	expenseExportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
	expenseReportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")

	expenseAddCmd.Flags().StringVar(&expenseName, "name", "", "Pet name (letters and spaces)")
	expenseAddCmd.Flags().StringVar(&expenseCategory, "category", "", "Category: "+model.CategoryNames())
	expenseAddCmd.Flags().StringVar(&expenseAmount, "amount", "", "Amount in RM")
	expenseAddCmd.Flags().StringVar(&expenseDate, "date", "", "Date (YYYY-MM-DD)")

	expenseCmd.AddCommand(expenseListCmd)
	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseDeleteCmd)
	expenseCmd.AddCommand(expenseExportCmd)
	expenseCmd.AddCommand(expenseReportCmd)
}

func filteredExpenses() []model.ExpenseRecord {
	records := storage.NewExpenseStore(cfg.ExpensesPath()).Records()
	return storage.FilterByName(records, expenseFilter)
}

func runExpenseList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	records := filteredExpenses()
	if len(records) == 0 {
		fmt.Fprintln(out, "No expenses found.")
	}
	for _, r := range records {
		fmt.Fprintln(out, r.Display())
	}
	fmt.Fprintf(out, "Total: RM %s\n", storage.Total(records).StringFixed(2))
	return nil
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	rec, err := validate.Expense(expenseName, expenseCategory, expenseAmount, expenseDate)
	if err != nil {
		return userError(err)
	}
	rec, err = storage.NewExpenseStore(cfg.ExpensesPath()).Add(rec)
	if err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", rec.Display())
	return nil
}

func runExpenseDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return userError(fmt.Errorf("invalid expense ID %q", args[0]))
	}
	rec, err := storage.NewExpenseStore(cfg.ExpensesPath()).Delete(id)
	if err != nil {
		return storeErr(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", rec.Display())
	return nil
}

// expenseJSON is the exported form of an expense.
type expenseJSON struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	PetName  string `json:"pet_name"`
	Category string `json:"category"`
	Amount   string `json:"amount_rm"`
}

func runExpenseExport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	records := filteredExpenses()

	switch exportFormat {
	case "json":
		rows := make([]expenseJSON, len(records))
		for i, r := range records {
			rows[i] = expenseJSON{
				ID:       r.ID,
				Date:     r.Date,
				PetName:  r.PetName,
				Category: string(r.Category),
				Amount:   r.Amount.StringFixed(2),
			}
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "csv":
		printExpenseCSV(out, records)
	default:
		return userError(fmt.Errorf("unknown format %q: use csv or json", exportFormat))
	}
	return nil
}

func printExpenseCSV(out io.Writer, records []model.ExpenseRecord) {
	fmt.Fprintln(out, "id,date,pet_name,category,amount_rm")
	for _, r := range records {
		fmt.Fprintf(out, "%d,%s,%s,%s,%s\n",
			r.ID,
			csvEscape(r.Date),
			csvEscape(r.PetName),
			csvEscape(string(r.Category)),
			r.Amount.StringFixed(2),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func runExpenseReport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	records := filteredExpenses()
	totals := storage.TotalsByCategory(records)
	grand := storage.Total(records)

	switch reportFormat {
	case "csv":
		fmt.Fprintln(out, "category,count,total_rm")
		for _, t := range totals {
			fmt.Fprintf(out, "%s,%d,%s\n", csvEscape(string(t.Category)), t.Count, t.Total.StringFixed(2))
		}
	case "json":
		type categoryJSON struct {
			Category string `json:"category"`
			Count    int    `json:"count"`
			Total    string `json:"total_rm"`
		}
		report := struct {
			Categories []categoryJSON `json:"categories"`
			Total      string         `json:"total_rm"`
		}{Categories: []categoryJSON{}, Total: grand.StringFixed(2)}
		for _, t := range totals {
			report.Categories = append(report.Categories, categoryJSON{string(t.Category), t.Count, t.Total.StringFixed(2)})
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "md":
		fmt.Fprintln(out, "Expenses by category")
		fmt.Fprintln(out, "--------------------------------")
		for _, t := range totals {
			fmt.Fprintf(out, "%-20sRM %s\n", t.Category, t.Total.StringFixed(2))
		}
		fmt.Fprintln(out, "--------------------------------")
		fmt.Fprintf(out, "%-20sRM %s\n", "Total", grand.StringFixed(2))
	default:
		return userError(fmt.Errorf("unknown format %q: use md, csv or json", reportFormat))
	}
	return nil
}
