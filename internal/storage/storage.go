package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrPersist marks a failed save in the stores that report save
	// failures as their own condition (expenses and appointments).
	ErrPersist = errors.New("failed to save data to file")
	// ErrNotFound is returned when an index or ID does not name a record.
	ErrNotFound = errors.New("record not found")
	// ErrNoPet is returned when a schedule operation names no existing pet.
	ErrNoPet = errors.New("no pet selected")
)

// Separator splits the fields of every stored record.
const Separator = "|"

// BaseDir returns the root data directory (~/.petcare).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".petcare"), nil
}

// ReadLines returns the lines of path without line terminators. A missing
// file yields no lines and no error.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	text := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}

// WriteLines atomically replaces path with lines, one per line.
func WriteLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}

	// Atomic write: write and sync a temp file, then rename.
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("storage error creating temp file: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error syncing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// AppendLine adds one line to the end of path, creating it if needed. A
// missing final newline in the existing file is repaired first.
func AppendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	prefix := ""
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
		prefix = "\n"
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("storage error opening %s: %w", path, err)
	}
	if _, err := f.WriteString(prefix + line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("storage error appending to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage error closing %s: %w", path, err)
	}
	return nil
}

// SplitFields splits a trimmed record line on Separator.
func SplitFields(line string) []string {
	return strings.Split(strings.TrimSpace(line), Separator)
}

// JoinFields joins record fields with Separator.
func JoinFields(fields ...string) string {
	return strings.Join(fields, Separator)
}
