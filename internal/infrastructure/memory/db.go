// Package memory keeps every collection in process memory. It backs the
// "memory" store driver and the service tests.
package memory

import (
	"sync"
	"time"

	"campusevents/internal/domain/entities"
)

type storedEvent struct {
	event entities.Event
	seq   int
}

// DB is the shared state behind the memory repositories. A single mutex
// makes every paired write atomic.
type DB struct {
	mu  sync.Mutex
	loc *time.Location
	now func() time.Time
	seq int

	events        map[string]*storedEvent
	likes         map[string]map[string]bool
	attendees     map[string][]entities.Attendee
	comments      map[string][]entities.Comment
	registrations map[string]map[string]entities.Registration
	favourites    map[string]map[string]entities.SavedPost
	profiles      map[string]entities.Profile
}

func NewDB(loc *time.Location) *DB {
	if loc == nil {
		loc = time.UTC
	}
	return &DB{
		loc:           loc,
		now:           time.Now,
		events:        map[string]*storedEvent{},
		likes:         map[string]map[string]bool{},
		attendees:     map[string][]entities.Attendee{},
		comments:      map[string][]entities.Comment{},
		registrations: map[string]map[string]entities.Registration{},
		favourites:    map[string]map[string]entities.SavedPost{},
		profiles:      map[string]entities.Profile{},
	}
}

// WithClock replaces the server timestamp source.
func (db *DB) WithClock(now func() time.Time) *DB {
	db.now = now
	return db
}

// Attendees returns a copy of the attendee records of an event.
func (db *DB) Attendees(eventID string) []entities.Attendee {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]entities.Attendee(nil), db.attendees[eventID]...)
}

// LikeMarkers counts the like markers of an event.
func (db *DB) LikeMarkers(eventID string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.likes[eventID])
}

func cloneEvent(e entities.Event) entities.Event {
	out := e
	if e.Tags != nil {
		out.Tags = append([]string(nil), e.Tags...)
	}
	if e.MaxParticipants != nil {
		m := *e.MaxParticipants
		out.MaxParticipants = &m
	}
	if e.Schedule.DurationMinutes != nil {
		d := *e.Schedule.DurationMinutes
		out.Schedule.DurationMinutes = &d
	}
	return out
}
