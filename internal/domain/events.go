package domain

import "time"

// Routing keys on the events exchange.
const (
	EventUserRegistered = "user.registered"
	EventProfileUpdated = "user.profile.updated"
)

type UserRegisteredEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ProfileUpdatedEvent lists changed field names only, never their values.
type ProfileUpdatedEvent struct {
	UserID     string    `json:"user_id"`
	Fields     []string  `json:"fields"`
	OccurredAt time.Time `json:"occurred_at"`
}
