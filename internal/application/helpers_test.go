package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain/entities"
	"campusevents/internal/infrastructure/memory"
	"campusevents/internal/ports/output"
)

var (
	fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	manager  = entities.Identity{UID: "m1", Email: "robotics@uni.edu", Role: entities.RoleManager}
	student  = entities.Identity{UID: "s1", Email: "s1@uni.edu", Role: entities.RoleStudent}
)

type fixture struct {
	db           *memory.DB
	events       *memory.EventRepository
	interactions *memory.InteractionStore
	profiles     *memory.ProfileRepository
	announcer    *recordingAnnouncer
	metrics      *recordingMetrics
	eventSvc     *EventService
	ledger       *InteractionService
	profileSvc   *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.NewDB(time.UTC).WithClock(func() time.Time { return fixedNow })
	f := &fixture{
		db:           db,
		events:       memory.NewEventRepository(db),
		interactions: memory.NewInteractionStore(db),
		profiles:     memory.NewProfileRepository(db),
		announcer:    &recordingAnnouncer{},
		metrics:      &recordingMetrics{},
	}
	log := zerolog.Nop()
	f.eventSvc = NewEventService(f.events, f.profiles, f.announcer, time.UTC, log).
		WithClock(func() time.Time { return fixedNow })
	f.ledger = NewInteractionService(f.events, f.interactions, f.metrics, log).
		WithClock(func() time.Time { return fixedNow })
	f.profileSvc = NewProfileService(f.profiles, f.events, log)

	require.NoError(t, f.profiles.Upsert(context.Background(), &entities.Profile{
		UID:             manager.UID,
		Email:           manager.Email,
		Role:            entities.RoleManager,
		SocietyName:     "Robotics Society",
		ProfileComplete: true,
	}))
	return f
}

// seedEvent creates a published event owned by the manager.
func (f *fixture) seedEvent(t *testing.T, title string) *entities.Event {
	t.Helper()
	e, err := f.eventSvc.CreateEvent(context.Background(), manager, EventInput{
		Title:     title,
		Venue:     "Hall A",
		Campus:    "Main",
		EventDate: fixedNow.Add(48 * time.Hour),
		StartTime: "10:00",
		EndTime:   "12:00",
		Status:    entities.StatusPublished,

		OrganizerName: "Robotics Society",
	})
	require.NoError(t, err)
	return e
}

type recordingAnnouncer struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (a *recordingAnnouncer) Announce(_ context.Context, e *entities.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.titles = append(a.titles, e.Title)
	return a.err
}

type recordingMetrics struct {
	mu    sync.Mutex
	kinds []entities.InteractionKind
	fails int
}

func (m *recordingMetrics) InteractionApplied(kind entities.InteractionKind, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kinds = append(m.kinds, kind)
	if err != nil {
		m.fails++
	}
}

// spyRepo records the queries pushed down to the store and can fail List.
type spyRepo struct {
	output.EventRepository
	queries   []output.EventQuery
	listFails int
	listCalls int
	listErr   error
}

func (r *spyRepo) List(ctx context.Context) ([]entities.Event, error) {
	r.listCalls++
	if r.listCalls <= r.listFails {
		return nil, r.listErr
	}
	return r.EventRepository.List(ctx)
}

func (r *spyRepo) ListWhere(ctx context.Context, q output.EventQuery) ([]entities.Event, error) {
	r.queries = append(r.queries, q)
	return r.EventRepository.ListWhere(ctx, q)
}
