package interfaces

import (
	"context"
	"time"
)

// Cache is the durable key-value store with TTL semantics the engine writes
// snapshots and bounded lists into. All operations are best effort; callers
// treat failures as cache misses.
type Cache interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetWithTTL stores value under key, expiring after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// ListPush prepends value to the list at key and trims it to maxLen,
	// evicting the oldest entries.
	ListPush(ctx context.Context, key string, value []byte, maxLen int64) error
	// ListRange returns list entries between start and stop inclusive.
	ListRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
	// SetAdd adds member to the set registry at key.
	SetAdd(ctx context.Context, key, member string) error
	// SetMembers returns all members of the set registry at key.
	SetMembers(ctx context.Context, key string) ([]string, error)
	Close() error
}
