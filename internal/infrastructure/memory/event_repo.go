package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]entities.Event, error) {
	return r.ListWhere(ctx, output.EventQuery{})
}

func (r *EventRepository) ListWhere(ctx context.Context, q output.EventQuery) ([]entities.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Repository("list events", err)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rows := make([]*storedEvent, 0, len(r.db.events))
	for _, se := range r.db.events {
		if matches(&se.event, q) {
			rows = append(rows, se)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.event.CreatedAt.Equal(b.event.CreatedAt) {
			return a.event.CreatedAt.After(b.event.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]entities.Event, len(rows))
	for i, se := range rows {
		out[i] = cloneEvent(se.event)
		out[i].Normalize(r.db.loc)
	}
	return out, nil
}

func matches(e *entities.Event, q output.EventQuery) bool {
	return (q.Category == "" || e.Category == q.Category) &&
		(q.Type == "" || e.Type == q.Type) &&
		(q.Status == "" || e.Status == q.Status) &&
		(q.CreatedBy == "" || e.CreatedBy == q.CreatedBy)
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	se, ok := r.db.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	e := cloneEvent(se.event)
	e.Normalize(r.db.loc)
	return &e, nil
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	event.ID = uuid.NewString()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.Counters = entities.Counters{}
	event.ApprovalStatus = entities.ApprovalPending

	r.db.seq++
	r.db.events[event.ID] = &storedEvent{event: cloneEvent(*event), seq: r.db.seq}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	se, ok := r.db.events[event.ID]
	if !ok {
		return domain.ErrEventNotFound
	}
	updated := cloneEvent(*event)
	updated.CreatedBy = se.event.CreatedBy
	updated.OrganizerID = se.event.OrganizerID
	updated.CreatedAt = se.event.CreatedAt
	updated.Counters = se.event.Counters
	updated.ApprovalStatus = se.event.ApprovalStatus
	updated.UpdatedAt = r.db.now()
	se.event = updated

	event.UpdatedAt = updated.UpdatedAt
	event.Counters = updated.Counters
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.db.events, id)
	delete(r.db.likes, id)
	delete(r.db.attendees, id)
	delete(r.db.comments, id)
	return nil
}
