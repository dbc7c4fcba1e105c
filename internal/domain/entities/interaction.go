package entities

import "time"

// Snapshot is the copy of event fields stored under a user's favourites and
// registrations. It is not updated when the event changes.
type Snapshot struct {
	EventID       string
	EventTitle    string
	EventImage    string
	Venue         string
	Campus        string
	DateTime      string
	StartTime     string
	EndTime       string
	OrganizerName string
}

// Registration is the per-user registration index entry.
type Registration struct {
	UserID    string
	Snapshot  Snapshot
	CreatedAt time.Time
}

// SavedPost is a user's favourite marker for an event.
type SavedPost struct {
	UserID    string
	Snapshot  Snapshot
	CreatedAt time.Time
}

// Attendee is appended on every registration and never removed.
type Attendee struct {
	ID       string
	EventID  string
	UserID   string
	JoinedAt time.Time
}

type Comment struct {
	ID        string
	EventID   string
	UserID    string
	Text      string
	CreatedAt time.Time
}

type InteractionKind string

const (
	InteractionLike     InteractionKind = "like"
	InteractionSave     InteractionKind = "save"
	InteractionRegister InteractionKind = "register"
	InteractionComment  InteractionKind = "comment"
)

// Interaction is one paired write: a membership record plus, where the kind
// has one, the matching counter on the event.
type Interaction struct {
	Kind    InteractionKind
	EventID string
	UserID  string
	// Snapshot is required for save and register.
	Snapshot Snapshot
	// Text is required for comment.
	Text string
	At   time.Time
}

// InteractionResult reports the state after an interaction was applied.
// Active is the marker state for toggles; Count is the counter value the
// store ended with (likes, attendees or comments).
type InteractionResult struct {
	Active  bool
	Count   int
	Comment *Comment
}

// InteractionStatus is the current user's marker state on an event.
type InteractionStatus struct {
	Liked bool
	Saved bool
}
