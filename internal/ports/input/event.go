package input

import (
	"context"

	"campusevents/internal/application"
	"campusevents/internal/domain/entities"
	"campusevents/internal/domain/feed"
)

type EventUseCase interface {
	ListEvents(ctx context.Context) ([]entities.Event, error)
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	Feed(ctx context.Context, req application.FeedRequest) ([]entities.Event, error)
	Search(ctx context.Context, c feed.Criteria) ([]entities.Event, error)
	CreateEvent(ctx context.Context, who entities.Identity, in application.EventInput) (*entities.Event, error)
	UpdateEvent(ctx context.Context, who entities.Identity, id string, in application.EventInput) (*entities.Event, error)
	DeleteEvent(ctx context.Context, who entities.Identity, id string) error
	CalendarLink(ctx context.Context, id string) (string, error)
}

var _ EventUseCase = (*application.EventService)(nil)
