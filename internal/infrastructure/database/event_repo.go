package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewEventRepository returns events normalized against loc.
func NewEventRepository(pool *pgxpool.Pool, loc *time.Location) *EventRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &EventRepository{pool: pool, loc: loc}
}

func (r *EventRepository) List(ctx context.Context) ([]entities.Event, error) {
	return r.ListWhere(ctx, output.EventQuery{})
}

func (r *EventRepository) ListWhere(ctx context.Context, q output.EventQuery) ([]entities.Event, error) {
	where, args := buildEventWhere(q)
	sql := "SELECT " + eventColumns + " FROM events" + where + " ORDER BY created_at DESC, seq DESC"

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, domain.Repository("list events", err)
	}
	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, domain.Repository("list events", err)
	}
	for i := range events {
		events[i].Normalize(r.loc)
	}
	return events, nil
}

// buildEventWhere turns the set fields of q into a WHERE clause with
// positional arguments.
func buildEventWhere(q output.EventQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("category", string(q.Category))
	add("event_type", string(q.Type))
	add("status", string(q.Status))
	add("created_by", q.CreatedBy)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+eventColumns+" FROM events WHERE id = $1", id)
	if err != nil {
		return nil, domain.Repository("get event by id", err)
	}
	e, err := pgx.CollectExactlyOneRow(rows, scanEvent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, domain.Repository("get event by id", err)
	}
	e.Normalize(r.loc)
	return &e, nil
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	event.ID = uuid.NewString()
	event.Counters = entities.Counters{}
	event.ApprovalStatus = entities.ApprovalPending

	cols := append([]string{"id", "organizer_id", "created_by", "approval_status"}, eventEditableColumns...)
	args := append([]any{event.ID, event.OrganizerID, event.CreatedBy, string(event.ApprovalStatus)}, editableArgs(event)...)
	sql := fmt.Sprintf(
		"INSERT INTO events (%s) VALUES (%s) RETURNING created_at, updated_at",
		strings.Join(cols, ", "), placeholders(1, len(cols)),
	)
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&event.CreatedAt, &event.UpdatedAt); err != nil {
		return domain.Repository("create event", err)
	}
	return nil
}

// Update writes the editable columns. Ownership, counters, approval and
// creation time are never touched here.
func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	sets := make([]string, len(eventEditableColumns))
	for i, c := range eventEditableColumns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+2)
	}
	sql := fmt.Sprintf(
		`UPDATE events SET %s, updated_at = NOW() WHERE id = $1
		RETURNING updated_at, likes_count, attendees_count, comments_count, shares_count`,
		strings.Join(sets, ", "),
	)
	args := append([]any{event.ID}, editableArgs(event)...)
	err := r.pool.QueryRow(ctx, sql, args...).Scan(
		&event.UpdatedAt,
		&event.Counters.Likes, &event.Counters.Attendees, &event.Counters.Comments, &event.Counters.Shares,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return domain.Repository("update event", err)
	}
	return nil
}

// Delete removes the event; likes, attendees and comments cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return domain.Repository("delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// placeholders renders "$from, ..., $(from+n-1)".
func placeholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ps, ", ")
}
