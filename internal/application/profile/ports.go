package profile

import (
	"context"
	"time"

	"github.com/baechuer/skillmarket/internal/domain"
)

// Users is the identity store as seen by the profile API.
type Users interface {
	FindByID(ctx context.Context, id string) (domain.PublicUser, error)
	Update(ctx context.Context, id string, patch domain.ProfilePatch) (domain.PublicUser, error)
}

// Cache holds public profile views keyed by user id.
// Get reports ok=false on a miss.
type Cache interface {
	Get(ctx context.Context, userID string) (u domain.PublicUser, ok bool, err error)
	Set(ctx context.Context, u domain.PublicUser) error
}

type EventPublisher interface {
	PublishProfileUpdated(ctx context.Context, evt domain.ProfileUpdatedEvent) error
}

// AvatarStorage presigns direct browser uploads into object storage.
type AvatarStorage interface {
	PresignPut(ctx context.Context, key, contentType string) (url string, expires time.Duration, err error)
	PublicURL(key string) string
}
