package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"triviarena/internal/model"
)

const sessionKeyPrefix = "session:"

// RedisStorage is the durable session backend. Values are JSON; SET with an
// expiry argument is a single atomic command, so a key never exists without
// a TTL. Time fields round-trip through RFC 3339 strings.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *RedisStorage) Get(ctx context.Context, id string) (*model.GameSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.GameSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *RedisStorage) Set(ctx context.Context, id string, session *model.GameSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(id), data, ttl).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

// Count walks the session keyspace by prefix. O(n), accepted at expected
// session volumes.
func (r *RedisStorage) Count(ctx context.Context) (int, error) {
	count := 0
	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

// Cleanup is a no-op: Redis expires session keys on its own.
func (r *RedisStorage) Cleanup(_ context.Context) (int, error) {
	return 0, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}
