package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/pet-assistant/internal/model"
	"github.com/Tiliavir/pet-assistant/internal/pager"
	"github.com/Tiliavir/pet-assistant/internal/storage"
	"github.com/Tiliavir/pet-assistant/internal/validate"
)

// now is replaced in tests.
var now = time.Now

var (
	vetListPage int
	vetDelPage  int
	vetDelRow   int

	vetPet    string
	vetYear   string
	vetMonth  string
	vetDay    string
	vetClinic string
	vetReason string
)

var vetCmd = &cobra.Command{
	Use:   "vet",
	Short: "Manage vet appointments",
}

var vetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vet appointments, six per page",
	Args:  cobra.NoArgs,
	RunE:  runVetList,
}

var vetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a vet appointment (date defaults to today)",
	Args:  cobra.NoArgs,
	RunE:  runVetAdd,
}

var vetEditCmd = &cobra.Command{
	Use:   "edit <appointment#>",
	Short: "Edit a vet appointment; omitted fields keep their value",
	Args:  cobra.ExactArgs(1),
	RunE:  runVetEdit,
}

var vetDeleteCmd = &cobra.Command{
	Use:   "delete [appointment#]",
	Short: "Delete a vet appointment by number, or by --page and --row",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVetDelete,
}

func init() {
	vetListCmd.Flags().IntVar(&vetListPage, "page", 1, "Page to show")

	for _, c := range []*cobra.Command{vetAddCmd, vetEditCmd} {
		c.Flags().StringVar(&vetPet, "pet", "", "Pet name")
		c.Flags().StringVar(&vetYear, "year", "", "Year (2025-2035)")
		c.Flags().StringVar(&vetMonth, "month", "", "Month (1-12)")
		c.Flags().StringVar(&vetDay, "day", "", "Day of month")
		c.Flags().StringVar(&vetClinic, "clinic", "", "Clinic")
		c.Flags().StringVar(&vetReason, "reason", "", "Reason for the visit (optional)")
	}

	vetDeleteCmd.Flags().IntVar(&vetDelPage, "page", 0, "Page of the appointment to delete")
	vetDeleteCmd.Flags().IntVar(&vetDelRow, "row", 0, "Row on that page (1-6)")

	vetCmd.AddCommand(vetListCmd)
	vetCmd.AddCommand(vetAddCmd)
	vetCmd.AddCommand(vetEditCmd)
	vetCmd.AddCommand(vetDeleteCmd)
}

func runVetList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	entries := storage.OpenAppointmentStore(cfg.AppointmentsPath()).List()
	if len(entries) == 0 {
		fmt.Fprintln(out, "Vet Appointment Data is Null")
		return nil
	}

	p := pager.New(pager.DefaultSize)
	p.Select(vetListPage-1, len(entries))
	if p.Page() != vetListPage-1 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Page %d does not exist, showing page %d of %d.\n",
			vetListPage, p.Page()+1, p.Pages(len(entries)))
	}
	for i, e := range pager.Visible(p, entries) {
		lines := strings.SplitN(e.Display(), "\n", 2)
		fmt.Fprintf(out, "%d. %s\n", p.Index(i)+1, lines[0])
		if len(lines) == 2 {
			fmt.Fprintf(out, "   %s\n", lines[1])
		}
	}
	fmt.Fprintf(out, "Page %d of %d\n", p.Page()+1, p.Pages(len(entries)))
	return nil
}

// appointmentForm holds the raw form values before validation.
type appointmentForm struct {
	pet, year, month, day, clinic, reason string
}

// formFrom pre-fills the form from an existing appointment.
func formFrom(e model.AppointmentEntry) appointmentForm {
	f := appointmentForm{pet: e.PetName, clinic: e.Clinic, reason: e.Reason}
	if parts := strings.Split(e.Date, "-"); len(parts) == 3 {
		f.year, f.month, f.day = parts[0], parts[1], parts[2]
	}
	if f.reason == model.NoReason {
		f.reason = ""
	}
	return f
}

// todayForm is the add form: the date starts at today.
func todayForm() appointmentForm {
	t := now()
	return appointmentForm{
		year:  strconv.Itoa(t.Year()),
		month: strconv.Itoa(int(t.Month())),
		day:   strconv.Itoa(t.Day()),
	}
}

// applyFlags overwrites the form fields whose flags were given.
func (f appointmentForm) applyFlags(cmd *cobra.Command) appointmentForm {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("pet", &f.pet, vetPet)
	set("year", &f.year, vetYear)
	set("month", &f.month, vetMonth)
	set("day", &f.day, vetDay)
	set("clinic", &f.clinic, vetClinic)
	set("reason", &f.reason, vetReason)
	return f
}

func (f appointmentForm) entry() (model.AppointmentEntry, error) {
	return validate.Appointment(f.pet, f.year, f.month, f.day, f.clinic, f.reason)
}

func runVetAdd(cmd *cobra.Command, args []string) error {
	e, err := todayForm().applyFlags(cmd).entry()
	if err != nil {
		return userError(err)
	}
	store := storage.OpenAppointmentStore(cfg.AppointmentsPath())
	if err := store.Add(e); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added appointment %d: %s\n", len(store.List()), oneLine(e))
	return nil
}

func runVetEdit(cmd *cobra.Command, args []string) error {
	idx, err := parseIndex(args[0], "appointment")
	if err != nil {
		return err
	}
	store := storage.OpenAppointmentStore(cfg.AppointmentsPath())
	old, err := store.Get(idx)
	if err != nil {
		return storeErr(err)
	}
	e, err := formFrom(old).applyFlags(cmd).entry()
	if err != nil {
		return userError(err)
	}
	if err := store.Edit(idx, e); err != nil {
		return storeErr(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated appointment %d: %s\n", idx+1, oneLine(e))
	return nil
}

// deleteIndex resolves the appointment to delete from either the
// positional number or --page/--row.
func deleteIndex(args []string, page, row int) (int, error) {
	switch {
	case len(args) == 1 && (page != 0 || row != 0):
		return 0, userError(fmt.Errorf("give either an appointment number or --page and --row, not both"))
	case len(args) == 1:
		return parseIndex(args[0], "appointment")
	case page < 1 || row < 1 || row > pager.DefaultSize:
		return 0, userError(fmt.Errorf("select an appointment: a number, or --page N with --row 1-%d", pager.DefaultSize))
	}
	return pager.AbsoluteIndex(page-1, row-1, pager.DefaultSize), nil
}

func runVetDelete(cmd *cobra.Command, args []string) error {
	idx, err := deleteIndex(args, vetDelPage, vetDelRow)
	if err != nil {
		return err
	}
	e, err := storage.OpenAppointmentStore(cfg.AppointmentsPath()).Delete(idx)
	if err != nil {
		return storeErr(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted appointment: %s\n", oneLine(e))
	return nil
}

func oneLine(e model.AppointmentEntry) string {
	return strings.ReplaceAll(e.Display(), "\n", " | ")
}
