package util

import "context"

// MessagePublisher sends keyed messages to the event bus.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
