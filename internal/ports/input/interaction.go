package input

import (
	"context"

	"campusevents/internal/application"
	"campusevents/internal/domain/entities"
)

type InteractionUseCase interface {
	ToggleLike(ctx context.Context, eventID, userID string) (application.LikeState, error)
	ToggleSave(ctx context.Context, eventID, userID string) (application.SaveState, error)
	Register(ctx context.Context, eventID, userID string) (int, error)
	PostComment(ctx context.Context, eventID, userID, text string) (entities.Comment, error)
	Comments(ctx context.Context, eventID string) ([]entities.Comment, error)
	Status(ctx context.Context, eventID, userID string) (entities.InteractionStatus, error)
	Registrations(ctx context.Context, userID string) ([]entities.Registration, error)
	SavedPosts(ctx context.Context, userID string) ([]entities.SavedPost, error)
}

var _ InteractionUseCase = (*application.InteractionService)(nil)
