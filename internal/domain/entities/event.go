package entities

import (
	"strings"
	"time"
)

type Category string

const (
	CategorySeminar     Category = "Seminar"
	CategoryWorkshop    Category = "Workshop"
	CategorySports      Category = "Sports"
	CategoryCultural    Category = "Cultural"
	CategoryAcademic    Category = "Academic"
	CategoryCompetition Category = "Competition"
)

type EventType string

const (
	EventTypeOnline  EventType = "Online"
	EventTypeOffline EventType = "Offline"
	EventTypeHybrid  EventType = "Hybrid"
)

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPublished Status = "Published"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Counters are the denormalized aggregates kept on the event record.
type Counters struct {
	Likes     int
	Attendees int
	Comments  int
	Shares    int
}

type Event struct {
	ID           string
	Title        string
	Description  string
	Category     Category
	Type         EventType
	Venue        string
	Campus       string
	LocationLink string
	PosterURL    string
	BrochureLink string
	Tags         []string
	Visibility   Visibility

	Schedule Schedule

	IsOpenEvent            bool
	IsRegistrationRequired bool
	RegistrationLink       string
	RegistrationFee        float64
	MaxParticipants        *int

	OrganizerID         string
	OrganizerName       string
	OrganizerDepartment string
	OrganizerEmail      string

	Status         Status
	ApprovalStatus ApprovalStatus

	Counters Counters

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize resolves the effective schedule date once so callers never
// re-implement the fallback chain.
func (e *Event) Normalize(loc *time.Location) {
	e.Schedule.Resolved = e.Schedule.Resolve(loc)
}

// ApplyOpenEventRules enforces that an open event is free and needs no
// registration.
func (e *Event) ApplyOpenEventRules() {
	if e.IsOpenEvent {
		e.RegistrationFee = 0
		e.IsRegistrationRequired = false
	}
}

func (e *Event) IsOwnedBy(userID string) bool {
	return userID != "" && e.CreatedBy == userID
}

// EffectiveStatus treats a missing status as Published, like legacy records.
func (e *Event) EffectiveStatus() Status {
	if strings.TrimSpace(string(e.Status)) == "" {
		return StatusPublished
	}
	return e.Status
}

// EffectiveApproval treats a missing approval as approved.
func (e *Event) EffectiveApproval() ApprovalStatus {
	if strings.TrimSpace(string(e.ApprovalStatus)) == "" {
		return ApprovalApproved
	}
	return e.ApprovalStatus
}

// Snapshot captures the denormalized copy stored with favourites and
// registrations.
func (e *Event) Snapshot() Snapshot {
	return Snapshot{
		EventID:       e.ID,
		EventTitle:    e.Title,
		EventImage:    e.PosterURL,
		Venue:         e.Venue,
		Campus:        e.Campus,
		DateTime:      e.Schedule.SnapshotDateTime(),
		StartTime:     e.Schedule.StartTime,
		EndTime:       e.Schedule.EndTime,
		OrganizerName: e.OrganizerName,
	}
}

// ParseTags splits a comma separated list, trimming entries and dropping empties.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
