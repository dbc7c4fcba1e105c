package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/domain/feed"
	"campusevents/internal/ports/output"
)

// calendarLength is the block booked by "add to calendar" links.
const calendarLength = 2 * time.Hour

// FeedRequest selects a named feed for a user.
type FeedRequest struct {
	Mode   feed.Mode
	Search string
	UserID string
}

type EventService struct {
	eventRepo   output.EventRepository
	profileRepo output.ProfileRepository
	announcer   output.Announcer
	validate    *validator.Validate
	loc         *time.Location
	retry       RetryConfig
	now         func() time.Time
	log         zerolog.Logger
}

func NewEventService(
	eventRepo output.EventRepository,
	profileRepo output.ProfileRepository,
	announcer output.Announcer,
	loc *time.Location,
	log zerolog.Logger,
) *EventService {
	if loc == nil {
		loc = time.UTC
	}
	return &EventService{
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		announcer:   announcer,
		validate:    newValidator(),
		loc:         loc,
		retry:       DefaultRetryConfig(),
		now:         time.Now,
		log:         log,
	}
}

// WithClock replaces the time source, for tests.
func (s *EventService) WithClock(now func() time.Time) *EventService {
	s.now = now
	return s
}

// WithRetry replaces the retry policy used by ListEvents.
func (s *EventService) WithRetry(cfg RetryConfig) *EventService {
	s.retry = cfg
	return s
}

// ListEvents returns every event, newest first. Transient store failures
// are retried.
func (s *EventService) ListEvents(ctx context.Context) ([]entities.Event, error) {
	return retryRead(ctx, s.retry, s.eventRepo.List)
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

// Feed lists all events and narrows them to the requested feed.
func (s *EventService) Feed(ctx context.Context, req FeedRequest) ([]entities.Event, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return feed.Select(events, feed.Options{
		Mode:          req.Mode,
		Search:        req.Search,
		CurrentUserID: req.UserID,
		Now:           s.now(),
	}), nil
}

// Search runs the advanced search. Published status, and a type or category
// when exactly one is selected, are evaluated by the store.
func (s *EventService) Search(ctx context.Context, c feed.Criteria) ([]entities.Event, error) {
	// Unlike Select, a missing status is not read as Published here: stores
	// drop documents without a status field.
	q := output.EventQuery{Status: entities.StatusPublished}
	if t, ok := c.SingleType(); ok {
		q.Type = t
	}
	if cat, ok := c.SingleCategory(); ok {
		q.Category = cat
	}
	events, err := s.eventRepo.ListWhere(ctx, q)
	if err != nil {
		return nil, err
	}
	if c.Now.IsZero() {
		c.Now = s.now()
	}
	return feed.Search(events, c), nil
}

// CreateEvent stores a new event owned by the caller. Only managers with a
// completed profile may create events.
func (s *EventService) CreateEvent(ctx context.Context, who entities.Identity, in EventInput) (*entities.Event, error) {
	if !who.IsAuthenticated() {
		return nil, domain.ErrAuthRequired
	}
	if err := s.checkCanCreate(ctx, who); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	event := &entities.Event{}
	in.applyTo(event)
	s.deriveFields(event)
	event.CreatedBy = who.UID
	event.OrganizerID = who.UID
	event.ApprovalStatus = entities.ApprovalPending
	event.Counters = entities.Counters{}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	event.Normalize(s.loc)
	s.log.Info().Str("event_id", event.ID).Str("created_by", who.UID).Msg("event created")

	if s.announcer != nil && event.EffectiveStatus() == entities.StatusPublished {
		if err := s.announcer.Announce(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("event_id", event.ID).Msg("event announcement failed")
		}
	}
	return event, nil
}

func (s *EventService) checkCanCreate(ctx context.Context, who entities.Identity) error {
	profile, err := s.profileRepo.FindByID(ctx, who.UID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return err
		}
		if who.Role != entities.RoleManager {
			return domain.ErrNotManager
		}
		return domain.ErrProfileIncomplete
	}
	if profile.Role != entities.RoleManager {
		return domain.ErrNotManager
	}
	if !profile.CanCreateEvents() {
		return domain.ErrProfileIncomplete
	}
	return nil
}

// UpdateEvent replaces the editable fields of an event owned by the caller.
// Ownership is checked before anything is written.
func (s *EventService) UpdateEvent(ctx context.Context, who entities.Identity, id string, in EventInput) (*entities.Event, error) {
	event, err := s.ownedEvent(ctx, who, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	in.applyTo(event)
	s.deriveFields(event)
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	event.Normalize(s.loc)
	return event, nil
}

// DeleteEvent removes an event owned by the caller.
func (s *EventService) DeleteEvent(ctx context.Context, who entities.Identity, id string) error {
	if _, err := s.ownedEvent(ctx, who, id); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("event_id", id).Str("deleted_by", who.UID).Msg("event deleted")
	return nil
}

func (s *EventService) ownedEvent(ctx context.Context, who entities.Identity, id string) (*entities.Event, error) {
	if !who.IsAuthenticated() {
		return nil, domain.ErrAuthRequired
	}
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsOwnedBy(who.UID) {
		return nil, domain.ErrNotOwner
	}
	return event, nil
}

func (s *EventService) deriveFields(e *entities.Event) {
	e.Schedule.RecomputeDuration()
	e.Schedule.DeriveDateTime(s.loc)
	e.ApplyOpenEventRules()
}

// CalendarLink builds a Google Calendar template link for the event: two
// hours from its resolved start.
func (s *EventService) CalendarLink(ctx context.Context, id string) (string, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	start := event.Schedule.Resolved
	if start.IsZero() {
		return "", domain.Validation("event %s has no date", id)
	}
	start = start.In(s.loc)
	end := start.Add(calendarLength)

	title := event.Title
	if title == "" {
		title = "Event"
	}
	params := url.Values{}
	params.Set("text", title)
	params.Set("details", event.Description)
	params.Set("location", event.Venue)
	params.Set("dates", fmt.Sprintf("%s/%s", start.Format("20060102T150405"), end.Format("20060102T150405")))
	return "https://calendar.google.com/calendar/render?action=TEMPLATE&" + params.Encode(), nil
}
