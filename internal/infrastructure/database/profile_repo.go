package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

var _ output.ProfileRepository = (*ProfileRepository)(nil)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) FindByID(ctx context.Context, uid string) (*entities.Profile, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+profileColumns+" FROM profiles WHERE uid = $1", uid)
	if err != nil {
		return nil, domain.Repository("get profile", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanProfile)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, domain.Repository("get profile", err)
	}
	return &p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *entities.Profile) error {
	cols := strings.Split(profileColumns, ",")
	// created_at and updated_at are set by the database.
	cols = cols[:len(cols)-2]
	updates := make([]string, 0, len(cols))
	for _, c := range cols[1:] {
		c = strings.TrimSpace(c)
		updates = append(updates, c+" = EXCLUDED."+c)
	}

	sql := "INSERT INTO profiles (" + strings.Join(cols, ",") + ") VALUES (" + placeholders(1, len(cols)) + `)
		ON CONFLICT (uid) DO UPDATE SET ` + strings.Join(updates, ", ") + `, updated_at = NOW()
		RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, sql,
		p.UID, p.Email, string(p.Role), p.DisplayName, p.FirstName, p.LastName, p.Department, p.Semester,
		p.SocietyName, p.Category, p.Description, p.LogoURL, p.FoundedYear, p.ContactEmail,
		p.ProfileComplete,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Repository("upsert profile", err)
	}
	return nil
}
