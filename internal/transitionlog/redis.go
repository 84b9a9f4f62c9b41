package transitionlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list that receives transition lines.
const DefaultRedisKey = "ticket:transitions"

// RedisSink appends lines to a Redis list with RPUSH. Each push is a single atomic
// command, so concurrent writers never interleave.
type RedisSink struct {
	client redis.Cmdable
	key    string
}

// NewRedisSink pushes onto key, or DefaultRedisKey when key is empty.
func NewRedisSink(client redis.Cmdable, key string) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{client: client, key: key}
}

// WriteLine appends line to the tail of the list.
func (s *RedisSink) WriteLine(ctx context.Context, line string) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	if err := s.client.RPush(ctx, s.key, line).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", s.key, err)
	}
	return nil
}
