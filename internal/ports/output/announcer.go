package output

import (
	"context"

	"campusevents/internal/domain/entities"
)

// Announcer publishes newly published events to an external channel.
type Announcer interface {
	Announce(ctx context.Context, event *entities.Event) error
}
