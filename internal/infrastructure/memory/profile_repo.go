package memory

import (
	"context"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/output"
)

var _ output.ProfileRepository = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByID(ctx context.Context, uid string) (*entities.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.profiles[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *entities.Profile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := r.db.now()
	if existing, ok := r.db.profiles[profile.UID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.db.profiles[profile.UID] = *profile
	return nil
}
