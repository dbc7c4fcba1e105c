package feed

import (
	"slices"
	"strings"
	"time"

	"campusevents/internal/domain/entities"
)

// When narrows advanced search results by date.
type When string

const (
	WhenAny      When = ""
	WhenUpcoming When = "Upcoming"
	WhenPast     When = "Past"
)

// Criteria is the advanced search form: multi-select filters, a location
// term and an optional date range.
type Criteria struct {
	Departments []string
	Types       []entities.EventType
	Categories  []entities.Category
	Location    string
	From        time.Time
	To          time.Time
	When        When
	Now         time.Time
}

// SingleType returns the type to push down to the store when exactly one is
// selected.
func (c Criteria) SingleType() (entities.EventType, bool) {
	if len(c.Types) == 1 {
		return c.Types[0], true
	}
	return "", false
}

// SingleCategory is SingleType for categories.
func (c Criteria) SingleCategory() (entities.Category, bool) {
	if len(c.Categories) == 1 {
		return c.Categories[0], true
	}
	return "", false
}

// Search filters events by c, preserving order. The range bounds only apply
// to dated events.
func Search(events []entities.Event, c Criteria) []entities.Event {
	term := strings.ToLower(strings.TrimSpace(c.Location))
	out := make([]entities.Event, 0, len(events))
	for i := range events {
		e := &events[i]
		if len(c.Departments) > 0 && !slices.Contains(c.Departments, e.OrganizerDepartment) {
			continue
		}
		if len(c.Types) > 0 && !slices.Contains(c.Types, e.Type) {
			continue
		}
		if len(c.Categories) > 0 && !slices.Contains(c.Categories, e.Category) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Venue), term) &&
			!strings.Contains(strings.ToLower(e.Campus), term) {
			continue
		}
		if !c.inRange(e.Schedule.Resolved) {
			continue
		}
		if !c.matchesWhen(e.Schedule.Resolved) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

func (c Criteria) inRange(d time.Time) bool {
	if d.IsZero() {
		return true
	}
	if !c.From.IsZero() && d.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && d.After(c.To) {
		return false
	}
	return true
}

func (c Criteria) matchesWhen(d time.Time) bool {
	switch c.When {
	case WhenUpcoming:
		return d.IsZero() || d.After(c.Now)
	case WhenPast:
		return !d.IsZero() && d.Before(c.Now)
	default:
		return true
	}
}
