package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/pet-assistant/internal/msgraph"
	"github.com/Tiliavir/pet-assistant/internal/storage"
	"github.com/Tiliavir/pet-assistant/internal/timecalc"
)

// defaultSyncDays is the export window when --to is not given.
const defaultSyncDays = 90

var (
	calendarSyncFrom   string
	calendarSyncTo     string
	calendarSyncDryRun bool
	calendarSyncTZ     string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Outlook calendar integration",
}

var calendarSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Export vet and grooming appointments to Outlook",
	Long: `Creates Outlook calendar events for vet appointments (all-day) and grooming
appointments (timed) between --from and --to. Events created by an earlier
sync are recognised and skipped.`,
	Args: cobra.NoArgs,
	RunE: runCalendarSync,
}

func init() {
	calendarSyncCmd.Flags().StringVar(&calendarSyncFrom, "from", "", "Start date (YYYY-MM-DD); defaults to today")
	calendarSyncCmd.Flags().StringVar(&calendarSyncTo, "to", "", fmt.Sprintf("End date (YYYY-MM-DD); defaults to %d days after --from", defaultSyncDays))
	calendarSyncCmd.Flags().BoolVar(&calendarSyncDryRun, "dry-run", false, "Print planned events without creating them")
	calendarSyncCmd.Flags().StringVar(&calendarSyncTZ, "timezone", "", "IANA timezone for event times (overrides config)")
	calendarCmd.AddCommand(calendarSyncCmd)
}

// syncWindow resolves --from/--to into an inclusive window in loc.
func syncWindow(fromArg, toArg string, today time.Time, loc *time.Location) (time.Time, time.Time, error) {
	from := timecalc.StartOfDay(today.In(loc))
	if fromArg != "" {
		d, err := time.ParseInLocation(timecalc.DateLayout, fromArg, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from value %q: %w", fromArg, err)
		}
		from = d
	}

	to := timecalc.EndOfDay(from.AddDate(0, 0, defaultSyncDays))
	if toArg != "" {
		d, err := time.ParseInLocation(timecalc.DateLayout, toArg, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to value %q: %w", toArg, err)
		}
		to = timecalc.EndOfDay(d)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to (%s) is before --from (%s)", to.Format(timecalc.DateLayout), from.Format(timecalc.DateLayout))
	}
	return from, to, nil
}

func runCalendarSync(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	timezone := cfg.Outlook.Timezone
	if calendarSyncTZ != "" {
		timezone = calendarSyncTZ
	}
	loc, _, err := msgraph.LoadTimezone(timezone)
	if err != nil {
		return userError(err)
	}
	from, to, err := syncWindow(calendarSyncFrom, calendarSyncTo, now(), loc)
	if err != nil {
		return userError(err)
	}

	appointments := storage.OpenAppointmentStore(cfg.AppointmentsPath()).List()
	grooming := storage.OpenGroomingStore(cfg.GroomingPath()).Entries()

	dryTag := ""
	if calendarSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing pet appointments to Outlook (%s → %s)%s...\n",
		from.Format(timecalc.DateLayout), to.Format(timecalc.DateLayout), dryTag)
	fmt.Fprintln(out)

	ctx := context.Background()

	httpClient, err := msgraph.GetHTTPClient(ctx, cfg.AuthDir(), cfg.Outlook.TenantID, cfg.Outlook.ClientID, os.Stderr)
	if err != nil {
		return userError(fmt.Errorf("authentication failed: %w", err))
	}
	client := msgraph.NewClient(httpClient, "")

	result, err := msgraph.Sync(ctx, client, appointments, grooming, msgraph.SyncOptions{
		From:            from,
		To:              to,
		Timezone:        timezone,
		GroomingMinutes: cfg.Outlook.GroomingMinutes,
		DryRun:          calendarSyncDryRun,
		Out:             out,
	})
	if err != nil {
		return fmt.Errorf("sync error: %w", err)
	}

	printSyncSummary(out, result)
	if result.Errors > 0 {
		return storageError(fmt.Errorf("%d record(s) could not be exported", result.Errors))
	}
	return nil
}

func printSyncSummary(out io.Writer, result msgraph.SyncResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d created\n", result.Created)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	fmt.Fprintf(out, "  %d outside window\n", result.OutOfRange)
	if result.Errors > 0 {
		fmt.Fprintf(out, "  %d errors\n", result.Errors)
	}
}
