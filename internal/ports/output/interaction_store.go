package output

import (
	"context"

	"campusevents/internal/domain/entities"
)

// InteractionStore persists likes, saves, registrations and comments.
//
// Apply performs an interaction's marker write and counter write as one unit:
// either both happen or neither does.
type InteractionStore interface {
	Apply(ctx context.Context, in entities.Interaction) (entities.InteractionResult, error)
	Status(ctx context.Context, eventID, userID string) (entities.InteractionStatus, error)
	Comments(ctx context.Context, eventID string) ([]entities.Comment, error)
	Registrations(ctx context.Context, userID string) ([]entities.Registration, error)
	SavedPosts(ctx context.Context, userID string) ([]entities.SavedPost, error)
}
