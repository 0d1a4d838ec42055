package events

import (
	"context"
)

// Publisher is the outbound side of the catalog event stream.
// Handlers treat a nil Publisher as events-disabled.
type Publisher interface {
	// Publish sends an event to the message broker
	Publish(ctx context.Context, exchange string, event *Event, headers Headers) error

	// Close closes the broker connection
	Close() error
}
