package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	interfaces "main/internal/domain/interfaces"

	"github.com/redis/go-redis/v9"
)

// Redis implements the TTL cache contract on top of a Redis client. Single
// key writes are atomic; no cross-key transactions are used.
type Redis struct {
	client *redis.Client
}

var _ interfaces.Cache = (*Redis)(nil)

// NewRedis wraps an already configured client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Connect dials Redis and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Redis{client: client}, nil
}

// Get returns the value for key, or (nil, nil) when the key is absent.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// SetWithTTL stores value under key with the given expiry.
func (r *Redis) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// ListPush prepends value to the list at key and trims to maxLen entries,
// evicting the oldest first.
func (r *Redis) ListPush(ctx context.Context, key string, value []byte, maxLen int64) error {
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, value)
	if maxLen > 0 {
		pipe.LTrim(ctx, key, 0, maxLen-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis list push %s: %w", key, err)
	}
	return nil
}

// ListRange returns list entries between start and stop inclusive.
func (r *Redis) ListRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	values, err := r.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis list range %s: %w", key, err)
	}
	out := make([][]byte, 0, len(values))
	for _, v := range values {
		out = append(out, []byte(v))
	}
	return out, nil
}

// SetAdd adds member to the set registry at key.
func (r *Redis) SetAdd(ctx context.Context, key, member string) error {
	if err := r.client.SAdd(ctx, key, member).Err(); err != nil {
		return fmt.Errorf("redis set add %s: %w", key, err)
	}
	return nil
}

// SetMembers returns all members of the set registry at key.
func (r *Redis) SetMembers(ctx context.Context, key string) ([]string, error) {
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis set members %s: %w", key, err)
	}
	return members, nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
