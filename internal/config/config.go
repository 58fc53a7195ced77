package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration, stored in ~/.petcare/config.yaml.
type Config struct {
	// DataDir holds the four data files. Empty means the config directory.
	DataDir string        `yaml:"data_dir"`
	Files   FilesConfig   `yaml:"files"`
	Log     LogConfig     `yaml:"log"`
	Outlook OutlookConfig `yaml:"outlook"`
}

// FilesConfig names the data file of each module, relative to DataDir.
type FilesConfig struct {
	Feeding      string `yaml:"feeding"`
	Grooming     string `yaml:"grooming"`
	Expenses     string `yaml:"expenses"`
	Appointments string `yaml:"appointments"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar export settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `yaml:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `yaml:"client_id"`
	// Timezone is the IANA timezone for event times (e.g. "Asia/Kuala_Lumpur"). Empty = UTC.
	Timezone string `yaml:"timezone"`
	// GroomingMinutes is the length of exported grooming events.
	GroomingMinutes int `yaml:"grooming_minutes"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant.
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID, which supports
	// the device code flow without a client secret or app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultGroomingMinutes is the default grooming event length.
	DefaultGroomingMinutes = 60
	// DefaultLogLevel keeps the CLI quiet unless something is skipped.
	DefaultLogLevel = "warn"
)

// Default data file names.
const (
	DefaultFeedingFile      = "feeding_data.txt"
	DefaultGroomingFile     = "grooming_data.txt"
	DefaultExpensesFile     = "expenses_data.txt"
	DefaultAppointmentsFile = "appointment_data.txt"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Files: FilesConfig{
			Feeding:      DefaultFeedingFile,
			Grooming:     DefaultGroomingFile,
			Expenses:     DefaultExpensesFile,
			Appointments: DefaultAppointmentsFile,
		},
		Log: LogConfig{Level: DefaultLogLevel},
		Outlook: OutlookConfig{
			TenantID:        DefaultTenantID,
			ClientID:        DefaultClientID,
			GroomingMinutes: DefaultGroomingMinutes,
		},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# pet assistant configuration - ~/.petcare/config.yaml
#
# All settings are optional; the defaults below work out of the box.

# Directory holding the data files. Empty means the directory of this file.
data_dir: ""

# Data file names, relative to data_dir.
files:
  feeding: feeding_data.txt
  grooming: grooming_data.txt
  expenses: expenses_data.txt
  appointments: appointment_data.txt

# Diagnostics on stderr: debug, info, warn or error.
log:
  level: warn
  json: false

# Outlook calendar export (pet calendar sync).
outlook:
  # "common" works for personal Microsoft accounts and any organisation.
  tenant_id: common
  # Public Azure CLI app; replace with your own app registration if needed.
  client_id: 04b07795-8542-4c4a-95af-30b2c573d5ab
  # IANA timezone for exported events, e.g. "Asia/Kuala_Lumpur". Empty = UTC.
  timezone: ""
  # Length of exported grooming events in minutes.
  grooming_minutes: 60
`

// DefaultPath returns the path to ~/.petcare/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".petcare", "config.yaml"), nil
}

// Load reads the config at path, creating it with annotated defaults on
// first run. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return withDirs(Default(), ""), err
		}
		path = p
	}
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return withDirs(Default(), dir), nil
	}
	if err != nil {
		return withDirs(Default(), dir), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return withDirs(Default(), dir), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	return withDirs(fillDefaults(cfg), dir), nil
}

// fillDefaults replaces zero-value fields with the built-in defaults so a
// partially filled file still yields a usable Config.
func fillDefaults(cfg Config) Config {
	def := Default()
	if cfg.Files.Feeding == "" {
		cfg.Files.Feeding = def.Files.Feeding
	}
	if cfg.Files.Grooming == "" {
		cfg.Files.Grooming = def.Files.Grooming
	}
	if cfg.Files.Expenses == "" {
		cfg.Files.Expenses = def.Files.Expenses
	}
	if cfg.Files.Appointments == "" {
		cfg.Files.Appointments = def.Files.Appointments
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = def.Outlook.TenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = def.Outlook.ClientID
	}
	if cfg.Outlook.GroomingMinutes <= 0 {
		cfg.Outlook.GroomingMinutes = def.Outlook.GroomingMinutes
	}
	return cfg
}

func withDirs(cfg Config, dir string) Config {
	if cfg.DataDir == "" {
		cfg.DataDir = dir
	}
	return cfg
}

// FeedingPath returns the absolute path of the feeding data file.
func (c Config) FeedingPath() string { return c.resolve(c.Files.Feeding) }

// GroomingPath returns the absolute path of the grooming data file.
func (c Config) GroomingPath() string { return c.resolve(c.Files.Grooming) }

// ExpensesPath returns the absolute path of the expense data file.
func (c Config) ExpensesPath() string { return c.resolve(c.Files.Expenses) }

// AppointmentsPath returns the absolute path of the appointment data file.
func (c Config) AppointmentsPath() string { return c.resolve(c.Files.Appointments) }

// AuthDir returns the directory holding cached OAuth tokens.
func (c Config) AuthDir() string { return filepath.Join(c.DataDir, "auth") }

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
