package storage

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/pet-assistant/internal/log"
	"github.com/Tiliavir/pet-assistant/internal/model"
)

// GroomingStore keeps grooming rows as the raw stored lines. Rows are
// identified by position.
type GroomingStore struct {
	path string
	rows []string
	log  zerolog.Logger
}

// OpenGroomingStore creates a store for path and loads it.
func OpenGroomingStore(path string) *GroomingStore {
	s := &GroomingStore{path: path, log: log.WithFile("grooming", path)}
	s.Load()
	return s
}

// Load keeps every non-blank line with at least two separators, verbatim.
func (s *GroomingStore) Load() {
	s.rows = nil

	lines, err := ReadLines(s.path)
	if err != nil {
		s.log.Warn().Err(err).Msg("treating unreadable grooming file as empty")
		return
	}
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if strings.Count(l, Separator) < 2 {
			s.log.Warn().Int("line", i+1).Msg("skipping line with fewer than three fields")
			continue
		}
		s.rows = append(s.rows, l)
	}
}

// Save rewrites the whole file from memory.
func (s *GroomingStore) Save() error {
	return WriteLines(s.path, s.rows)
}

// Entries returns the rows split into fields.
func (s *GroomingStore) Entries() []model.GroomingEntry {
	out := make([]model.GroomingEntry, len(s.rows))
	for i, r := range s.rows {
		out[i] = model.SplitGroomingLine(r)
	}
	return out
}

// Add appends e and saves.
func (s *GroomingStore) Add(e model.GroomingEntry) error {
	s.rows = append(s.rows, e.Line())
	return s.Save()
}

// Update replaces the row at index with e and saves.
func (s *GroomingStore) Update(index int, e model.GroomingEntry) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.rows[index] = e.Line()
	return s.Save()
}

// Delete removes the row at index and saves. The removed entry is returned.
func (s *GroomingStore) Delete(index int) (model.GroomingEntry, error) {
	if err := s.check(index); err != nil {
		return model.GroomingEntry{}, err
	}
	e := model.SplitGroomingLine(s.rows[index])
	s.rows = append(s.rows[:index], s.rows[index+1:]...)
	return e, s.Save()
}

func (s *GroomingStore) check(index int) error {
	if index < 0 || index >= len(s.rows) {
		return fmt.Errorf("%w: grooming entry %d", ErrNotFound, index+1)
	}
	return nil
}
