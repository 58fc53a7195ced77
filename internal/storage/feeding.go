package storage

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/pet-assistant/internal/log"
	"github.com/Tiliavir/pet-assistant/internal/model"
)

// Line tags of the feeding file.
const (
	TagPet      = "PET"
	TagSchedule = "SCHEDULE"
)

type feedingKind int

const (
	feedingBlank feedingKind = iota
	feedingPet
	feedingSchedule
)

// feedingLine is one parsed line of the feeding file.
type feedingLine struct {
	kind     feedingKind
	pet      model.Pet
	schedule model.FeedingSchedule
}

// parseFeedingLine decodes "PET|name|age|weight" and
// "SCHEDULE|time|food|amount". Blank lines carry no data.
func parseFeedingLine(line string) (feedingLine, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return feedingLine{kind: feedingBlank}, nil
	}

	parts := strings.Split(line, Separator)
	if len(parts) < 4 {
		return feedingLine{}, fmt.Errorf("expected 4 fields, got %d", len(parts))
	}

	switch parts[0] {
	case TagPet:
		age, err := strconv.Atoi(parts[2])
		if err != nil {
			return feedingLine{}, fmt.Errorf("bad age %q: %w", parts[2], err)
		}
		weight, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return feedingLine{}, fmt.Errorf("bad weight %q: %w", parts[3], err)
		}
		return feedingLine{kind: feedingPet, pet: model.Pet{Name: parts[1], Age: age, Weight: weight}}, nil
	case TagSchedule:
		amount, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return feedingLine{}, fmt.Errorf("bad amount %q: %w", parts[3], err)
		}
		return feedingLine{kind: feedingSchedule, schedule: model.FeedingSchedule{Time: parts[1], Food: parts[2], Amount: amount}}, nil
	default:
		return feedingLine{}, fmt.Errorf("unknown record tag %q", parts[0])
	}
}

// FeedingStore holds the pets and their schedules. Pets are identified by
// their position; this is only safe because a single process owns the file.
type FeedingStore struct {
	path string
	pets []model.Pet
	log  zerolog.Logger
}

// OpenFeedingStore creates a store for path and loads it.
func OpenFeedingStore(path string) *FeedingStore {
	s := &FeedingStore{path: path, log: log.WithFile("feeding", path)}
	s.Load()
	return s
}

// Load replaces the in-memory pets with the file contents. A missing or
// unreadable file yields no pets.
func (s *FeedingStore) Load() {
	s.pets = nil

	lines, err := ReadLines(s.path)
	if err != nil {
		s.log.Warn().Err(err).Msg("treating unreadable feeding file as empty")
		return
	}

	current := -1
	for i, raw := range lines {
		fl, err := parseFeedingLine(raw)
		if err != nil {
			s.log.Warn().Err(err).Int("line", i+1).Msg("skipping malformed line")
			if strings.HasPrefix(strings.TrimSpace(raw), TagPet+Separator) {
				// The schedules below a broken pet belong to no pet.
				current = -1
			}
			continue
		}
		switch fl.kind {
		case feedingPet:
			s.pets = append(s.pets, fl.pet)
			current = len(s.pets) - 1
		case feedingSchedule:
			if current < 0 {
				s.log.Warn().Int("line", i+1).Msg("skipping schedule without a pet")
				continue
			}
			s.pets[current].Schedules = append(s.pets[current].Schedules, fl.schedule)
		}
	}
	s.log.Debug().Int("pets", len(s.pets)).Msg("loaded")
}

// Save rewrites the whole file from memory.
func (s *FeedingStore) Save() error {
	var lines []string
	for _, p := range s.pets {
		lines = append(lines, JoinFields(TagPet, p.Name, strconv.Itoa(p.Age), model.FormatFloat(p.Weight)))
		for _, sc := range p.Schedules {
			lines = append(lines, JoinFields(TagSchedule, sc.Time, sc.Food, model.FormatFloat(sc.Amount)))
		}
		lines = append(lines, "")
	}
	if err := WriteLines(s.path, lines); err != nil {
		return err
	}
	s.log.Debug().Int("pets", len(s.pets)).Msg("saved")
	return nil
}

// Pets returns a copy of the pets in file order.
func (s *FeedingStore) Pets() []model.Pet {
	out := make([]model.Pet, len(s.pets))
	for i, p := range s.pets {
		out[i] = clonePet(p)
	}
	return out
}

func clonePet(p model.Pet) model.Pet {
	p.Schedules = slices.Clone(p.Schedules)
	return p
}

// Pet returns the pet at index.
func (s *FeedingStore) Pet(index int) (model.Pet, error) {
	if index < 0 || index >= len(s.pets) {
		return model.Pet{}, fmt.Errorf("%w: pet %d", ErrNoPet, index+1)
	}
	return clonePet(s.pets[index]), nil
}

// AddPet appends p and returns its index.
func (s *FeedingStore) AddPet(p model.Pet) int {
	s.pets = append(s.pets, p)
	return len(s.pets) - 1
}

// DeletePet removes the pet at index together with its schedules.
func (s *FeedingStore) DeletePet(index int) (model.Pet, error) {
	p, err := s.Pet(index)
	if err != nil {
		return model.Pet{}, err
	}
	s.pets = append(s.pets[:index], s.pets[index+1:]...)
	return p, nil
}

// AddSchedule appends sc to the pet at petIndex.
func (s *FeedingStore) AddSchedule(petIndex int, sc model.FeedingSchedule) error {
	if _, err := s.Pet(petIndex); err != nil {
		return err
	}
	s.pets[petIndex].Schedules = append(s.pets[petIndex].Schedules, sc)
	return nil
}

// DeleteSchedule removes schedule index of the pet at petIndex.
func (s *FeedingStore) DeleteSchedule(petIndex, index int) (model.FeedingSchedule, error) {
	p, err := s.Pet(petIndex)
	if err != nil {
		return model.FeedingSchedule{}, err
	}
	if index < 0 || index >= len(p.Schedules) {
		return model.FeedingSchedule{}, fmt.Errorf("%w: schedule %d", ErrNotFound, index+1)
	}
	sc := p.Schedules[index]
	s.pets[petIndex].Schedules = append(p.Schedules[:index], p.Schedules[index+1:]...)
	return sc, nil
}
