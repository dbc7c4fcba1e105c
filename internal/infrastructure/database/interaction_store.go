package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

var _ output.InteractionStore = (*InteractionStore)(nil)

// InteractionStore applies each interaction in one transaction with the
// event row locked, so the marker and its counter always move together.
type InteractionStore struct {
	pool *pgxpool.Pool
}

func NewInteractionStore(pool *pgxpool.Pool) *InteractionStore {
	return &InteractionStore{pool: pool}
}

func (s *InteractionStore) Apply(ctx context.Context, in entities.Interaction) (entities.InteractionResult, error) {
	var res entities.InteractionResult
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx, "SELECT id FROM events WHERE id = $1 FOR UPDATE", in.EventID).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		if err != nil {
			return fmt.Errorf("lock event: %w", err)
		}

		switch in.Kind {
		case entities.InteractionLike:
			res, err = applyLike(ctx, tx, in)
		case entities.InteractionSave:
			res, err = applySave(ctx, tx, in)
		case entities.InteractionRegister:
			res, err = applyRegister(ctx, tx, in)
		case entities.InteractionComment:
			res, err = applyComment(ctx, tx, in)
		default:
			return domain.Validation("unknown interaction %q", in.Kind)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) || errors.Is(err, domain.ErrValidation) {
			return entities.InteractionResult{}, err
		}
		return entities.InteractionResult{}, domain.Repository("apply "+string(in.Kind), err)
	}
	return res, nil
}

func applyLike(ctx context.Context, tx pgx.Tx, in entities.Interaction) (entities.InteractionResult, error) {
	tag, err := tx.Exec(ctx, "DELETE FROM event_likes WHERE event_id = $1 AND user_id = $2", in.EventID, in.UserID)
	if err != nil {
		return entities.InteractionResult{}, fmt.Errorf("delete like: %w", err)
	}
	res := entities.InteractionResult{Active: tag.RowsAffected() == 0}
	if res.Active {
		if _, err := tx.Exec(ctx,
			"INSERT INTO event_likes (event_id, user_id, created_at) VALUES ($1, $2, $3)",
			in.EventID, in.UserID, in.At,
		); err != nil {
			return entities.InteractionResult{}, fmt.Errorf("insert like: %w", err)
		}
		err = tx.QueryRow(ctx,
			"UPDATE events SET likes_count = likes_count + 1 WHERE id = $1 RETURNING likes_count",
			in.EventID,
		).Scan(&res.Count)
	} else {
		err = tx.QueryRow(ctx,
			"UPDATE events SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1 RETURNING likes_count",
			in.EventID,
		).Scan(&res.Count)
	}
	if err != nil {
		return entities.InteractionResult{}, fmt.Errorf("update likes count: %w", err)
	}
	return res, nil
}

func applySave(ctx context.Context, tx pgx.Tx, in entities.Interaction) (entities.InteractionResult, error) {
	tag, err := tx.Exec(ctx, "DELETE FROM user_favourites WHERE user_id = $1 AND event_id = $2", in.UserID, in.EventID)
	if err != nil {
		return entities.InteractionResult{}, fmt.Errorf("delete favourite: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return entities.InteractionResult{Active: false}, nil
	}
	args := append([]any{in.UserID}, snapshotArgs(in.Snapshot)...)
	args = append(args, in.At)
	if _, err := tx.Exec(ctx,
		"INSERT INTO user_favourites (user_id, "+snapshotColumns+") VALUES ("+placeholders(1, len(args))+")",
		args...,
	); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("insert favourite: %w", err)
	}
	return entities.InteractionResult{Active: true}, nil
}

// applyRegister appends an attendee on every call; only the per-user index
// entry is keyed and therefore overwritten.
func applyRegister(ctx context.Context, tx pgx.Tx, in entities.Interaction) (entities.InteractionResult, error) {
	if _, err := tx.Exec(ctx,
		"INSERT INTO event_attendees (id, event_id, user_id, joined_at) VALUES ($1, $2, $3, $4)",
		uuid.NewString(), in.EventID, in.UserID, in.At,
	); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("insert attendee: %w", err)
	}

	res := entities.InteractionResult{Active: true}
	if err := tx.QueryRow(ctx,
		"UPDATE events SET attendees_count = attendees_count + 1 WHERE id = $1 RETURNING attendees_count",
		in.EventID,
	).Scan(&res.Count); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("update attendees count: %w", err)
	}

	args := append([]any{in.UserID}, snapshotArgs(in.Snapshot)...)
	args = append(args, in.At)
	if _, err := tx.Exec(ctx,
		`INSERT INTO user_registrations (user_id, `+snapshotColumns+`) VALUES (`+placeholders(1, len(args))+`)
		ON CONFLICT (user_id, event_id) DO UPDATE SET
			event_title = EXCLUDED.event_title, event_image = EXCLUDED.event_image,
			venue = EXCLUDED.venue, campus = EXCLUDED.campus, date_time = EXCLUDED.date_time,
			start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
			organizer_name = EXCLUDED.organizer_name, created_at = EXCLUDED.created_at`,
		args...,
	); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("upsert registration: %w", err)
	}
	return res, nil
}

func applyComment(ctx context.Context, tx pgx.Tx, in entities.Interaction) (entities.InteractionResult, error) {
	c := entities.Comment{
		ID:        uuid.NewString(),
		EventID:   in.EventID,
		UserID:    in.UserID,
		Text:      in.Text,
		CreatedAt: in.At,
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO event_comments (id, event_id, user_id, body, created_at) VALUES ($1, $2, $3, $4, $5)",
		c.ID, c.EventID, c.UserID, c.Text, c.CreatedAt,
	); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("insert comment: %w", err)
	}
	res := entities.InteractionResult{Active: true, Comment: &c}
	if err := tx.QueryRow(ctx,
		"UPDATE events SET comments_count = comments_count + 1 WHERE id = $1 RETURNING comments_count",
		in.EventID,
	).Scan(&res.Count); err != nil {
		return entities.InteractionResult{}, fmt.Errorf("update comments count: %w", err)
	}
	return res, nil
}

func (s *InteractionStore) Status(ctx context.Context, eventID, userID string) (entities.InteractionStatus, error) {
	var st entities.InteractionStatus
	err := s.pool.QueryRow(ctx, `SELECT
		EXISTS (SELECT 1 FROM event_likes WHERE event_id = $1 AND user_id = $2),
		EXISTS (SELECT 1 FROM user_favourites WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&st.Liked, &st.Saved)
	if err != nil {
		return entities.InteractionStatus{}, domain.Repository("get interaction status", err)
	}
	return st, nil
}

func (s *InteractionStore) Comments(ctx context.Context, eventID string) ([]entities.Comment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, event_id, user_id, body, created_at FROM event_comments
		WHERE event_id = $1 ORDER BY created_at DESC, seq DESC`,
		eventID,
	)
	if err != nil {
		return nil, domain.Repository("list comments", err)
	}
	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Comment, error) {
		var c entities.Comment
		err := row.Scan(&c.ID, &c.EventID, &c.UserID, &c.Text, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, domain.Repository("list comments", err)
	}
	return comments, nil
}

func (s *InteractionStore) Registrations(ctx context.Context, userID string) ([]entities.Registration, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+snapshotColumns+" FROM user_registrations WHERE user_id = $1 ORDER BY created_at DESC, event_id DESC",
		userID,
	)
	if err != nil {
		return nil, domain.Repository("list registrations", err)
	}
	regs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Registration, error) {
		snap, at, err := scanSnapshot(row)
		return entities.Registration{UserID: userID, Snapshot: snap, CreatedAt: at}, err
	})
	if err != nil {
		return nil, domain.Repository("list registrations", err)
	}
	return regs, nil
}

func (s *InteractionStore) SavedPosts(ctx context.Context, userID string) ([]entities.SavedPost, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+snapshotColumns+" FROM user_favourites WHERE user_id = $1 ORDER BY created_at DESC, event_id DESC",
		userID,
	)
	if err != nil {
		return nil, domain.Repository("list saved posts", err)
	}
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.SavedPost, error) {
		snap, at, err := scanSnapshot(row)
		return entities.SavedPost{UserID: userID, Snapshot: snap, CreatedAt: at}, err
	})
	if err != nil {
		return nil, domain.Repository("list saved posts", err)
	}
	return posts, nil
}
