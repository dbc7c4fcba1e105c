// Package feed selects the events a screen displays from the full,
// createdAt-descending list returned by the event repository. Every filter
// here keeps the input order; nothing is ever re-sorted.
package feed

import (
	"strings"
	"time"

	"campusevents/internal/domain/entities"
)

// Mode names a feed. Tokens are case-sensitive.
type Mode string

const (
	ModeAll             Mode = "all"
	ModeManagerEvents   Mode = "manager_events"
	ModeManagerAll      Mode = "manager_all"
	ModeAttended        Mode = "attended"
	ModeFavorites       Mode = "favorites"
	ModeSocieties       Mode = "societies"
	ModeStudentAll      Mode = "student_all"
	ModeStudentUpcoming Mode = "student_upcoming"
	ModeManagerUpcoming Mode = "manager_upcoming"
	ModeStudentPast     Mode = "student_past"
	ModeManagerPast     Mode = "manager_past"
)

// Options carries everything Select needs besides the events.
type Options struct {
	Mode          Mode
	Search        string
	CurrentUserID string
	Now           time.Time
}

// Select applies the text search and then the mode filter. Events must be
// normalized (Schedule.Resolved set) beforehand.
func Select(events []entities.Event, opts Options) []entities.Event {
	out := make([]entities.Event, 0, len(events))
	term := strings.ToLower(opts.Search)
	keep := predicate(opts)
	for i := range events {
		e := &events[i]
		if opts.Search != "" && !matchesText(e, term) {
			continue
		}
		if keep(e) {
			out = append(out, *e)
		}
	}
	return out
}

func predicate(opts Options) func(*entities.Event) bool {
	now := opts.Now
	switch opts.Mode {
	case ModeManagerEvents:
		uid := opts.CurrentUserID
		return func(e *entities.Event) bool { return uid != "" && e.CreatedBy == uid }
	case ModeAttended:
		// Approximation: any event with attendees, not the caller's attendance.
		return func(e *entities.Event) bool { return e.Counters.Attendees > 0 }
	case ModeStudentAll, ModeManagerAll:
		return func(e *entities.Event) bool { return isListable(e, now) }
	case ModeStudentUpcoming, ModeManagerUpcoming:
		return func(e *entities.Event) bool { return isListable(e, now) && CanStillRegister(e, now) }
	case ModeStudentPast, ModeManagerPast:
		return func(e *entities.Event) bool { return IsPast(e, now) }
	default:
		// all, favorites, societies and unknown tokens.
		return func(*entities.Event) bool { return true }
	}
}

func matchesText(e *entities.Event, term string) bool {
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Description), term)
}

// isListable: not in the past (undated counts as upcoming), published and
// not rejected.
func isListable(e *entities.Event, now time.Time) bool {
	return IsUpcoming(e, now) &&
		strings.EqualFold(string(e.EffectiveStatus()), string(entities.StatusPublished)) &&
		e.EffectiveApproval() != entities.ApprovalRejected
}

// IsUpcoming reports whether the resolved date is at or after now. An event
// without a date is treated as upcoming.
func IsUpcoming(e *entities.Event, now time.Time) bool {
	d := e.Schedule.Resolved
	return d.IsZero() || !d.Before(now)
}

// IsPast reports whether the event has a resolved date strictly before now.
func IsPast(e *entities.Event, now time.Time) bool {
	d := e.Schedule.Resolved
	return !d.IsZero() && d.Before(now)
}

// CanStillRegister reports whether registration is still possible at now.
func CanStillRegister(e *entities.Event, now time.Time) bool {
	if e.IsOpenEvent || !e.IsRegistrationRequired {
		return true
	}
	deadline := e.Schedule.RegistrationDeadline
	return deadline.IsZero() || !deadline.Before(now)
}
