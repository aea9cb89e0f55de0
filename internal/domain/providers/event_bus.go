package providers

import (
	"context"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.TriageEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.TriageEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelTriageCompleted carries every finished evaluation
	EventChannelTriageCompleted = "triage:completed"

	// EventChannelConsultPrefix is the prefix for consult-specific channels
	EventChannelConsultPrefix = "consult:"
)

// GetConsultChannel returns the channel name for a specific consult
func GetConsultChannel(consultID string) string {
	return EventChannelConsultPrefix + consultID
}
