package msgraph

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/pet-assistant/internal/log"
	"github.com/Tiliavir/pet-assistant/internal/model"
	"github.com/Tiliavir/pet-assistant/internal/timecalc"
)

// Event categories, also part of each transaction ID.
const (
	CategoryVet      = "Vet appointment"
	CategoryGrooming = "Grooming"
)

// graphDateTime is the zone-less layout Graph expects next to a timeZone.
const graphDateTime = "2006-01-02T15:04:05"

// Calendar is the part of the Graph client used by Sync.
type Calendar interface {
	GetCalendarView(ctx context.Context, from, to time.Time, timezone string) ([]CalendarEvent, error)
	CreateEvent(ctx context.Context, ev CalendarEvent) (CalendarEvent, error)
}

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Created    int
	Skipped    int
	OutOfRange int
	Errors     int
}

// SyncOptions configures a sync run. From and To bound the exported
// records by their start time, inclusive.
type SyncOptions struct {
	From            time.Time
	To              time.Time
	Timezone        string
	GroomingMinutes int
	DryRun          bool
	Out             io.Writer
}

// PlannedEvent is a record mapped to a calendar event.
type PlannedEvent struct {
	Event CalendarEvent
	Start time.Time
	Label string
}

// TransactionID derives a stable event identifier from the record content,
// so exporting the same record twice yields the same ID.
func TransactionID(category string, fields ...string) string {
	name := "petcare:" + category + "|" + strings.Join(fields, "|")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// LoadTimezone resolves an IANA name. Empty means UTC.
func LoadTimezone(name string) (*time.Location, string, error) {
	if name == "" {
		return time.UTC, "UTC", nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, name, nil
}

// AppointmentEvent maps a vet appointment to an all-day event. The stored ID
// is left out of the transaction ID because it changes on every save.
func AppointmentEvent(a model.AppointmentEntry, loc *time.Location, tz string) (PlannedEvent, error) {
	day, err := time.ParseInLocation(timecalc.DateLayout, a.Date, loc)
	if err != nil {
		return PlannedEvent{}, fmt.Errorf("parsing appointment date %q: %w", a.Date, err)
	}
	ev := CalendarEvent{
		TransactionID: TransactionID(CategoryVet, a.PetName, a.Date, a.Clinic, a.Reason),
		Subject:       "Vet: " + a.PetName,
		IsAllDay:      true,
		ShowAs:        "free",
		Categories:    []string{CategoryVet},
		Start:         DateTimeTimeZone{DateTime: day.Format(graphDateTime), TimeZone: tz},
		End:           DateTimeTimeZone{DateTime: timecalc.NextDay(day).Format(graphDateTime), TimeZone: tz},
		Location:      &Location{DisplayName: a.Clinic},
	}
	if a.Reason != "" && a.Reason != model.NoReason {
		ev.Body = &ItemBody{ContentType: "text", Content: a.Reason}
	}
	return PlannedEvent{
		Event: ev,
		Start: day,
		Label: fmt.Sprintf("%s vet appointment for %s at %s", a.Date, a.PetName, a.Clinic),
	}, nil
}

// GroomingEvent maps a grooming entry to a timed event of minutes length.
func GroomingEvent(g model.GroomingEntry, minutes int, loc *time.Location, tz string) (PlannedEvent, error) {
	start, err := timecalc.ParseDateTime(g.DateTime, loc)
	if err != nil {
		return PlannedEvent{}, fmt.Errorf("parsing grooming time %q: %w", g.DateTime, err)
	}
	if minutes <= 0 {
		minutes = 60
	}
	end := start.Add(time.Duration(minutes) * time.Minute)
	ev := CalendarEvent{
		TransactionID: TransactionID(CategoryGrooming, g.Pet, start.Format(timecalc.DateTimeLayout), g.Task),
		Subject:       fmt.Sprintf("Grooming: %s (%s)", g.Pet, g.Task),
		ShowAs:        "busy",
		Categories:    []string{CategoryGrooming},
		Start:         DateTimeTimeZone{DateTime: start.Format(graphDateTime), TimeZone: tz},
		End:           DateTimeTimeZone{DateTime: end.Format(graphDateTime), TimeZone: tz},
	}
	return PlannedEvent{
		Event: ev,
		Start: start,
		Label: fmt.Sprintf("%s grooming for %s: %s", start.Format(timecalc.DateTimeLayout), g.Pet, g.Task),
	}, nil
}

// Plan maps the records to events and keeps those starting inside
// [opts.From, opts.To]. Unmappable records are reported and counted.
func Plan(appointments []model.AppointmentEntry, grooming []model.GroomingEntry, opts SyncOptions) ([]PlannedEvent, SyncResult, error) {
	var result SyncResult
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	loc, tz, err := LoadTimezone(opts.Timezone)
	if err != nil {
		return nil, result, err
	}

	var planned []PlannedEvent
	keep := func(p PlannedEvent, err error) {
		if err != nil {
			fmt.Fprintf(out, "  ! Error: %v\n", err)
			result.Errors++
			return
		}
		if !timecalc.InRange(p.Start, opts.From, opts.To) {
			result.OutOfRange++
			return
		}
		planned = append(planned, p)
	}
	for _, a := range appointments {
		keep(AppointmentEvent(a, loc, tz))
	}
	for _, g := range grooming {
		keep(GroomingEvent(g, opts.GroomingMinutes, loc, tz))
	}
	return planned, result, nil
}

// Sync creates the planned events that are not already in the calendar.
// Existing events are matched by transaction ID. It prints progress to
// opts.Out and returns a SyncResult.
func Sync(ctx context.Context, cal Calendar, appointments []model.AppointmentEntry, grooming []model.GroomingEntry, opts SyncOptions) (SyncResult, error) {
	logger := log.WithComponent("msgraph")
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	planned, result, err := Plan(appointments, grooming, opts)
	if err != nil {
		return result, err
	}
	logger.Debug().Int("planned", len(planned)).Int("out_of_range", result.OutOfRange).Msg("plan ready")
	if len(planned) == 0 {
		return result, nil
	}

	// Widen by a day so all-day events on the boundary are seen.
	existing, err := cal.GetCalendarView(ctx, opts.From.AddDate(0, 0, -1), opts.To.AddDate(0, 0, 1), opts.Timezone)
	if err != nil {
		return result, fmt.Errorf("fetching calendar events: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, ev := range existing {
		if ev.TransactionID != "" && !ev.IsCancelled {
			seen[ev.TransactionID] = true
		}
	}

	for _, p := range planned {
		if seen[p.Event.TransactionID] {
			fmt.Fprintf(out, "  – Skipped:  %s (already in calendar)\n", p.Label)
			result.Skipped++
			continue
		}
		if opts.DryRun {
			fmt.Fprintf(out, "  + Would create: %s\n", p.Label)
			result.Created++
			seen[p.Event.TransactionID] = true
			continue
		}
		created, err := cal.CreateEvent(ctx, p.Event)
		if err != nil {
			fmt.Fprintf(out, "  ! Error creating %s: %v\n", p.Label, err)
			result.Errors++
			continue
		}
		logger.Debug().Str("event_id", created.ID).Str("transaction_id", p.Event.TransactionID).Msg("event created")
		fmt.Fprintf(out, "  ✓ Created:  %s\n", p.Label)
		result.Created++
		seen[p.Event.TransactionID] = true
	}
	return result, nil
}
