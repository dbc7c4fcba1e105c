package input

import (
	"context"

	"campusevents/internal/application"
	"campusevents/internal/domain/entities"
)

type ProfileUseCase interface {
	Me(ctx context.Context, who entities.Identity) (*entities.Profile, error)
	Update(ctx context.Context, who entities.Identity, in application.ProfileInput) (*entities.Profile, error)
	Society(ctx context.Context, uid string) (*entities.Profile, []entities.Event, error)
}

var _ ProfileUseCase = (*application.ProfileService)(nil)
