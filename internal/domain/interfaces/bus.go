package interfaces

import "context"

// Bus fans canonical events out to internal listeners in real time.
type Bus interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Close() error
}
