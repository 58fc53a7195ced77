package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/pet-assistant/internal/log"
	"github.com/Tiliavir/pet-assistant/internal/model"
)

// AppointmentStore holds vet appointments. Every save renumbers IDs to the
// 1-based line position, so IDs are always contiguous.
type AppointmentStore struct {
	path    string
	entries []model.AppointmentEntry
	log     zerolog.Logger
}

// OpenAppointmentStore creates a store for path and loads it.
func OpenAppointmentStore(path string) *AppointmentStore {
	s := &AppointmentStore{path: path, log: log.WithFile("appointment", path)}
	s.Load()
	return s
}

// Load replaces the in-memory list with the file contents. Lines that do not
// have exactly five fields are skipped.
func (s *AppointmentStore) Load() {
	s.entries = nil

	lines, err := ReadLines(s.path)
	if err != nil {
		s.log.Warn().Err(err).Msg("treating unreadable appointment file as empty")
		return
	}
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		parts := SplitFields(l)
		if len(parts) != 5 {
			s.log.Warn().Int("line", i+1).Int("fields", len(parts)).Msg("skipping malformed appointment")
			continue
		}
		id, _ := strconv.Atoi(parts[0])
		s.entries = append(s.entries, model.AppointmentEntry{
			ID:      id,
			PetName: parts[1],
			Date:    parts[2],
			Clinic:  parts[3],
			Reason:  parts[4],
		})
	}
}

// Save renumbers every entry and rewrites the file.
func (s *AppointmentStore) Save() error {
	lines := make([]string, len(s.entries))
	for i := range s.entries {
		s.entries[i].ID = i + 1
		lines[i] = JoinFields(s.entries[i].Fields()...)
	}
	if err := WriteLines(s.path, lines); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.log.Debug().Int("appointments", len(s.entries)).Msg("saved")
	return nil
}

// List returns the appointments in file order.
func (s *AppointmentStore) List() []model.AppointmentEntry {
	return s.entries
}

// Get returns the appointment at index.
func (s *AppointmentStore) Get(index int) (model.AppointmentEntry, error) {
	if index < 0 || index >= len(s.entries) {
		return model.AppointmentEntry{}, fmt.Errorf("%w: appointment %d", ErrNotFound, index+1)
	}
	return s.entries[index], nil
}

// Add appends e and saves. Its ID is assigned by the save.
func (s *AppointmentStore) Add(e model.AppointmentEntry) error {
	e.ID = 0
	s.entries = append(s.entries, e)
	return s.Save()
}

// Edit replaces the appointment at index and saves.
func (s *AppointmentStore) Edit(index int, e model.AppointmentEntry) error {
	if _, err := s.Get(index); err != nil {
		return err
	}
	s.entries[index] = e
	return s.Save()
}

// Delete removes the appointment at index and saves.
func (s *AppointmentStore) Delete(index int) (model.AppointmentEntry, error) {
	e, err := s.Get(index)
	if err != nil {
		return model.AppointmentEntry{}, err
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return e, s.Save()
}
