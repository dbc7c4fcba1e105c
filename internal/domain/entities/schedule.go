package entities

import (
	"strings"
	"time"
)

// Schedule groups the event's date fields. Older records only carry
// StartDate/EndDate or DateTime; zero times mean "not set".
type Schedule struct {
	EventDate            time.Time
	StartTime            string // HH:MM
	EndTime              string // HH:MM
	DurationMinutes      *int
	DateTime             string // ISO instant derived from EventDate + StartTime
	StartDate            time.Time
	EndDate              time.Time
	RegistrationDeadline time.Time

	// Resolved is the single effective date used by filtering. Zero means
	// the event has no date.
	Resolved time.Time
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseClock parses an HH:MM wall clock.
func ParseClock(s string) (hour, minute int, ok bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

// ParseDateTime accepts the ISO shapes written by the clients over time.
func ParseDateTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Resolve returns the effective date: EventDate (plus StartTime) first, then
// DateTime, then the legacy StartDate.
func (s Schedule) Resolve(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	if !s.EventDate.IsZero() {
		return s.combinedEventDate(loc)
	}
	if t, ok := ParseDateTime(s.DateTime, loc); ok {
		return t
	}
	if !s.StartDate.IsZero() {
		return s.StartDate
	}
	return time.Time{}
}

// EventDate is a calendar date in the campus zone. Stores hand it back in UTC,
// so the day is read after converting to loc.
func (s Schedule) combinedEventDate(loc *time.Location) time.Time {
	y, m, d := s.EventDate.In(loc).Date()
	hh, mm, _ := ParseClock(s.StartTime)
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}

// DeriveDateTime recomputes the combined DateTime string. Without an
// EventDate the legacy StartDate is used; without either it is cleared.
func (s *Schedule) DeriveDateTime(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	switch {
	case !s.EventDate.IsZero():
		s.DateTime = s.combinedEventDate(loc).UTC().Format(time.RFC3339)
	case !s.StartDate.IsZero():
		s.DateTime = s.StartDate.UTC().Format(time.RFC3339)
	default:
		s.DateTime = ""
	}
}

// RecomputeDuration sets DurationMinutes from the clock fields when both
// parse and end is after start. Otherwise the stored duration is kept,
// including for overnight events.
func (s *Schedule) RecomputeDuration() {
	sh, sm, ok1 := ParseClock(s.StartTime)
	eh, em, ok2 := ParseClock(s.EndTime)
	if !ok1 || !ok2 {
		return
	}
	diff := (eh*60 + em) - (sh*60 + sm)
	if diff > 0 {
		s.DurationMinutes = &diff
	}
}

// SnapshotDateTime is the date copied into favourites and registrations.
func (s Schedule) SnapshotDateTime() string {
	if s.DateTime != "" {
		return s.DateTime
	}
	if !s.EventDate.IsZero() {
		return s.EventDate.UTC().Format(time.RFC3339)
	}
	return ""
}
