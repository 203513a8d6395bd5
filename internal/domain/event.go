package domain

import (
	"context"
	"time"
)

// Routing keys for domain events
const (
	EventUserLoggedIn             = "user.logged_in"
	EventApplicationSubmitted     = "application.submitted"
	EventApplicationStatusChanged = "application.status_changed"
)

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload"`
}

// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, v any) error
}

// Notification is the message pushed to real-time clients.
type Notification struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// Notifier fans notifications out to connected real-time clients.
type Notifier interface {
	Broadcast(n Notification)
}
