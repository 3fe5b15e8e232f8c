package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore persists sessions in redis so they survive portal restarts and
// are shared across instances. The triple is written as one hash with a TTL,
// which keeps Set and Clear atomic per session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Set(ctx context.Context, id string, s Session) error {
	if err := validate(id, s); err != nil {
		return err
	}
	ttl, err := ttlFor(s.Token, r.ttl)
	if err != nil {
		return err
	}
	key := redisKeyPrefix + id
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"token":   s.Token,
		"role":    string(s.Role),
		"user_id": s.UserID,
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	fields, err := r.client.HGetAll(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return Session{}, ErrNoSession
	}
	return Session{
		Token:  fields["token"],
		Role:   Role(fields["role"]),
		UserID: fields["user_id"],
	}, nil
}

func (r *RedisStore) Clear(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
