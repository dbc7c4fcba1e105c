package application

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/domain/feed"
	"campusevents/internal/ports/output"
)

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("derives schedule fields and zeroes counters", func(t *testing.T) {
		f := newFixture(t)
		e, err := f.eventSvc.CreateEvent(ctx, manager, EventInput{
			Title:     "  Robotics Expo ",
			EventDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			StartTime: "09:30",
			EndTime:   "11:00",
			Tags:      []string{"ai", " ", "robots "},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "Robotics Expo", e.Title)
		assert.Equal(t, manager.UID, e.CreatedBy)
		assert.Equal(t, manager.UID, e.OrganizerID)
		assert.Equal(t, entities.ApprovalPending, e.ApprovalStatus)
		assert.Equal(t, entities.StatusPublished, e.Status)
		assert.Equal(t, entities.VisibilityPublic, e.Visibility)
		assert.Equal(t, entities.Counters{}, e.Counters)
		assert.Equal(t, []string{"ai", "robots"}, e.Tags)
		require.NotNil(t, e.Schedule.DurationMinutes)
		assert.Equal(t, 90, *e.Schedule.DurationMinutes)
		assert.Equal(t, "2025-03-12T09:30:00Z", e.Schedule.DateTime)
		assert.Equal(t, time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC), e.Schedule.Resolved)
		assert.Equal(t, []string{"Robotics Expo"}, f.announcer.titles)
	})

	t.Run("open events are free and need no registration", func(t *testing.T) {
		f := newFixture(t)
		e, err := f.eventSvc.CreateEvent(ctx, manager, EventInput{
			Title:                  "Open Day",
			IsOpenEvent:            true,
			IsRegistrationRequired: true,
			RegistrationFee:        250,
		})
		require.NoError(t, err)
		assert.False(t, e.IsRegistrationRequired)
		assert.Zero(t, e.RegistrationFee)
	})

	t.Run("drafts are not announced", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.eventSvc.CreateEvent(ctx, manager, EventInput{Title: "Draft", Status: entities.StatusDraft})
		require.NoError(t, err)
		assert.Empty(t, f.announcer.titles)
	})

	t.Run("announcement failures do not fail the create", func(t *testing.T) {
		f := newFixture(t)
		f.announcer.err = errors.New("discord down")
		_, err := f.eventSvc.CreateEvent(ctx, manager, EventInput{Title: "Still stored"})
		require.NoError(t, err)
		events, err := f.eventSvc.ListEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	tests := []struct {
		name    string
		who     entities.Identity
		profile *entities.Profile
		in      EventInput
		wantErr error
	}{
		{
			name:    "anonymous",
			who:     entities.Identity{},
			in:      EventInput{Title: "x"},
			wantErr: domain.ErrAuthRequired,
		},
		{
			name:    "student",
			who:     student,
			in:      EventInput{Title: "x"},
			wantErr: domain.ErrNotManager,
		},
		{
			name:    "manager without profile",
			who:     entities.Identity{UID: "m2", Role: entities.RoleManager},
			in:      EventInput{Title: "x"},
			wantErr: domain.ErrProfileIncomplete,
		},
		{
			name:    "manager with incomplete profile",
			who:     entities.Identity{UID: "m3", Role: entities.RoleManager},
			profile: entities.NewProfile("m3", "m3@uni.edu", entities.RoleManager),
			in:      EventInput{Title: "x"},
			wantErr: domain.ErrProfileIncomplete,
		},
		{
			name:    "missing title",
			who:     manager,
			in:      EventInput{},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "bad clock",
			who:     manager,
			in:      EventInput{Title: "x", StartTime: "25:00"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown category",
			who:     manager,
			in:      EventInput{Title: "x", Category: "Party"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "negative fee",
			who:     manager,
			in:      EventInput{Title: "x", RegistrationFee: -1},
			wantErr: domain.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.profile != nil {
				require.NoError(t, f.profiles.Upsert(ctx, tt.profile))
			}
			_, err := f.eventSvc.CreateEvent(ctx, tt.who, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)

			events, err := f.eventSvc.ListEvents(ctx)
			require.NoError(t, err)
			assert.Empty(t, events)
		})
	}
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("owner edit keeps counters and ownership", func(t *testing.T) {
		f := newFixture(t)
		e := f.seedEvent(t, "Quiz Night")
		_, err := f.ledger.ToggleLike(ctx, e.ID, "s1")
		require.NoError(t, err)

		updated, err := f.eventSvc.UpdateEvent(ctx, manager, e.ID, EventInput{
			Title:     "Quiz Night II",
			StartTime: "18:00",
			EndTime:   "17:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "Quiz Night II", updated.Title)
		assert.Equal(t, 1, updated.Counters.Likes)
		assert.Equal(t, manager.UID, updated.CreatedBy)
		assert.Equal(t, entities.ApprovalPending, updated.ApprovalStatus)
		// End before start leaves the earlier duration alone.
		require.NotNil(t, updated.Schedule.DurationMinutes)
		assert.Equal(t, 120, *updated.Schedule.DurationMinutes)
	})

	t.Run("non owner is refused before any write", func(t *testing.T) {
		f := newFixture(t)
		e := f.seedEvent(t, "Quiz Night")

		_, err := f.eventSvc.UpdateEvent(ctx, student, e.ID, EventInput{Title: "Hijacked"})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
		assert.ErrorIs(t, err, domain.ErrPermission)

		stored, err := f.eventSvc.GetEvent(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "Quiz Night", stored.Title)
	})

	t.Run("invalid input leaves the event alone", func(t *testing.T) {
		f := newFixture(t)
		e := f.seedEvent(t, "Quiz Night")
		_, err := f.eventSvc.UpdateEvent(ctx, manager, e.ID, EventInput{Title: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)

		stored, err := f.eventSvc.GetEvent(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "Quiz Night", stored.Title)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.eventSvc.UpdateEvent(ctx, manager, "nope", EventInput{Title: "x"})
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, "Bake Sale")
	_, err := f.ledger.PostComment(ctx, e.ID, "s1", "yum")
	require.NoError(t, err)

	err = f.eventSvc.DeleteEvent(ctx, student, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	_, err = f.eventSvc.GetEvent(ctx, e.ID)
	require.NoError(t, err)

	require.NoError(t, f.eventSvc.DeleteEvent(ctx, manager, e.ID))
	_, err = f.eventSvc.GetEvent(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	comments, err := f.interactions.Comments(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	upcoming := f.seedEvent(t, "Upcoming Talk")

	_, err := f.eventSvc.CreateEvent(ctx, manager, EventInput{
		Title:     "Old Talk",
		EventDate: fixedNow.Add(-72 * time.Hour),
		StartTime: "10:00",
	})
	require.NoError(t, err)

	events, err := f.eventSvc.Feed(ctx, FeedRequest{Mode: feed.ModeStudentUpcoming})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, upcoming.ID, events[0].ID)

	events, err = f.eventSvc.Feed(ctx, FeedRequest{Mode: feed.ModeStudentPast})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Old Talk", events[0].Title)

	events, err = f.eventSvc.Feed(ctx, FeedRequest{Mode: feed.ModeManagerEvents, UserID: manager.UID, Search: "talk"})
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = f.eventSvc.Feed(ctx, FeedRequest{Mode: feed.ModeManagerEvents})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSearchPushesDownFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	spy := &spyRepo{EventRepository: f.events}
	svc := NewEventService(spy, f.profiles, nil, time.UTC, zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })

	for _, in := range []EventInput{
		{Title: "Online Seminar", Type: entities.EventTypeOnline, Category: entities.CategorySeminar},
		{Title: "Offline Seminar", Type: entities.EventTypeOffline, Category: entities.CategorySeminar},
		{Title: "Online Workshop", Type: entities.EventTypeOnline, Category: entities.CategoryWorkshop},
		{Title: "Draft Seminar", Type: entities.EventTypeOnline, Category: entities.CategorySeminar, Status: entities.StatusDraft},
	} {
		_, err := svc.CreateEvent(ctx, manager, in)
		require.NoError(t, err)
	}

	got, err := svc.Search(ctx, feed.Criteria{
		Types:      []entities.EventType{entities.EventTypeOnline},
		Categories: []entities.Category{entities.CategorySeminar},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Online Seminar", got[0].Title)
	assert.Equal(t, []output.EventQuery{{
		Status:   entities.StatusPublished,
		Type:     entities.EventTypeOnline,
		Category: entities.CategorySeminar,
	}}, spy.queries)

	got, err = svc.Search(ctx, feed.Criteria{
		Types: []entities.EventType{entities.EventTypeOnline, entities.EventTypeOffline},
	})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, output.EventQuery{Status: entities.StatusPublished}, spy.queries[1])
}

func TestListEventsRetry(t *testing.T) {
	ctx := context.Background()
	fast := RetryConfig{MaxAttempts: 3, BackoffBase: time.Millisecond, BackoffMultiplier: 2}

	t.Run("transient failures are retried", func(t *testing.T) {
		f := newFixture(t)
		f.seedEvent(t, "Survivor")
		spy := &spyRepo{
			EventRepository: f.events,
			listFails:       2,
			listErr:         domain.Repository("list events", errors.New("connection reset")),
		}
		svc := NewEventService(spy, f.profiles, nil, time.UTC, zerolog.Nop()).WithRetry(fast)

		events, err := svc.ListEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, 3, spy.listCalls)
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		f := newFixture(t)
		spy := &spyRepo{
			EventRepository: f.events,
			listFails:       5,
			listErr:         domain.Repository("list events", errors.New("connection reset")),
		}
		svc := NewEventService(spy, f.profiles, nil, time.UTC, zerolog.Nop()).WithRetry(fast)

		_, err := svc.ListEvents(ctx)
		assert.ErrorIs(t, err, domain.ErrRepository)
		assert.Equal(t, 3, spy.listCalls)
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		f := newFixture(t)
		spy := &spyRepo{EventRepository: f.events, listFails: 5, listErr: domain.ErrPermission}
		svc := NewEventService(spy, f.profiles, nil, time.UTC, zerolog.Nop()).WithRetry(fast)

		_, err := svc.ListEvents(ctx)
		assert.ErrorIs(t, err, domain.ErrPermission)
		assert.Equal(t, 1, spy.listCalls)
	})

	t.Run("cancelled context stops the wait", func(t *testing.T) {
		f := newFixture(t)
		spy := &spyRepo{
			EventRepository: f.events,
			listFails:       5,
			listErr:         domain.Repository("list events", errors.New("timeout")),
		}
		svc := NewEventService(spy, f.profiles, nil, time.UTC, zerolog.Nop()).
			WithRetry(RetryConfig{MaxAttempts: 3, BackoffBase: time.Hour})

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.ListEvents(cctx)
		assert.ErrorIs(t, err, domain.ErrRepository)
		assert.Equal(t, 1, spy.listCalls)
	})
}

func TestCalendarLink(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, "Hack Day")

	link, err := f.eventSvc.CalendarLink(ctx, e.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://calendar.google.com/calendar/render?"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Hack Day", q.Get("text"))
	assert.Equal(t, "Hall A", q.Get("location"))
	assert.Equal(t, "20250312T100000/20250312T120000", q.Get("dates"))

	undated, err := f.eventSvc.CreateEvent(ctx, manager, EventInput{Title: "Someday"})
	require.NoError(t, err)
	_, err = f.eventSvc.CalendarLink(ctx, undated.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
