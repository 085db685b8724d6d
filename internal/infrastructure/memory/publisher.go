package memory

import (
	"context"

	"github.com/baechuer/skillmarket/internal/domain"
)

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(context.Context, domain.UserRegisteredEvent) error {
	return nil
}

func (NoopPublisher) PublishProfileUpdated(context.Context, domain.ProfileUpdatedEvent) error {
	return nil
}
