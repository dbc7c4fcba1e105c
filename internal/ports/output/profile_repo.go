package output

import (
	"context"

	"campusevents/internal/domain/entities"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, uid string) (*entities.Profile, error)
	Upsert(ctx context.Context, profile *entities.Profile) error
}
