package ports

import "context"

// EventPublisher publishes a JSON-encoded event to the bus under a routing
// key. Once Publish returns nil the transport guarantees at-least-once
// delivery; callers decide whether a publish failure is fatal or swallowed.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}
