package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/pet-assistant/internal/config"
	"github.com/Tiliavir/pet-assistant/internal/log"
	"github.com/Tiliavir/pet-assistant/internal/storage"
	"github.com/Tiliavir/pet-assistant/internal/validate"
)

var (
	configPath string
	dataDir    string
	logLevel   string
	logJSON    bool

	// cfg is loaded before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pet",
	Short: "Pet assistant – feeding, grooming, vet visits and expenses",
	Long: `pet is a single-user, file-based record keeper for pet care.
Feeding schedules, grooming appointments, vet appointments and expenses are
stored as pipe-delimited text files in ~/.petcare/.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default ~/.petcare/config.yaml)")
	pf.StringVar(&dataDir, "data-dir", "", "Directory holding the data files (overrides config)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.BoolVar(&logJSON, "log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(feedingCmd)
	rootCmd.AddCommand(groomingCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(vetCmd)
	rootCmd.AddCommand(calendarCmd)
}

// setup loads the config, applies flag overrides and initializes logging.
// Stores capture their logger when opened, so this must run first.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if dataDir != "" {
		loaded.DataDir = dataDir
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-json") {
		loaded.Log.JSON = logJSON
	}
	cfg = loaded

	log.Init(log.Config{
		Level:      log.Level(strings.ToLower(cfg.Log.Level)),
		JSONOutput: cfg.Log.JSON,
		Output:     os.Stderr,
	})
	logger := log.WithComponent("cmd")
	logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("data_dir", cfg.DataDir).
		Msg("starting")
	return nil
}

// exitError pins the process exit status of an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as something the user can fix (exit 1).
func userError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: 1, err: err}
}

// storageError marks err as a failure to persist (exit 2).
func storageError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: 2, err: err}
}

// exitCode maps an error to the process exit status: 1 for validation and
// usage errors, 2 for storage errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var ve *validate.Error
	if errors.As(err, &ve) {
		return 1
	}
	if errors.Is(err, storage.ErrPersist) {
		return 2
	}
	return 1
}

// parseIndex converts a 1-based position typed by the user into a slice
// index.
func parseIndex(arg, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, userError(fmt.Errorf("invalid %s number %q: must be 1 or greater", what, arg))
	}
	return n - 1, nil
}

// storeErr classifies an error from a store: a missing record is the
// user's mistake, anything else failed to persist.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrNoPet) {
		return userError(err)
	}
	return storageError(err)
}
