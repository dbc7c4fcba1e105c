package output

import (
	"context"

	"campusevents/internal/domain/entities"
)

// EventQuery holds the equality predicates a store may evaluate itself.
// Empty fields are not applied.
type EventQuery struct {
	Category  entities.Category
	Type      entities.EventType
	Status    entities.Status
	CreatedBy string
}

// EventRepository is the only component talking to the events collection.
// Lists are ordered by CreatedAt descending and returned normalized.
type EventRepository interface {
	List(ctx context.Context) ([]entities.Event, error)
	ListWhere(ctx context.Context, q EventQuery) ([]entities.Event, error)
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	Create(ctx context.Context, event *entities.Event) error
	Update(ctx context.Context, event *entities.Event) error
	Delete(ctx context.Context, id string) error
}
