package storage

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"triviarena/internal/model"
)

// Factory is the single source of truth for which backend is live. It
// implements SessionStorage by delegating to the active backend.
//
// When Redis is configured but unreachable, at startup or detected later
// from a failing call, the factory swaps in the in-memory backend and marks
// itself degraded. Failover is one-way: Redis is not retried until the
// process restarts. The call that observed the failure still returns its
// error; every call after the swap is served by the fallback.
type Factory struct {
	mu       sync.RWMutex
	active   SessionStorage
	fallback *MemoryStorage

	redisConfigured bool
	degraded        bool
	logger          *slog.Logger
}

// NewFactory selects a backend. An empty redisURL means memory-only (not
// degraded: memory is then the chosen backend, not a fallback).
func NewFactory(ctx context.Context, redisURL string, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	f := &Factory{
		fallback: NewMemoryStorage(),
		logger:   logger,
	}
	if redisURL == "" {
		f.active = f.fallback
		logger.Info("session storage: in-memory (redis not configured)")
		return f
	}

	f.redisConfigured = true
	addr := strings.TrimPrefix(redisURL, "redis://")
	client := redis.NewClient(&redis.Options{Addr: addr})
	rs := NewRedisStorage(client)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rs.Ping(pingCtx); err != nil {
		logger.Warn("redis unreachable, session storage degraded to in-memory",
			"addr", addr, "err", err)
		f.degraded = true
		f.active = f.fallback
		return f
	}

	f.active = rs
	logger.Info("session storage: redis", "addr", addr)
	return f
}

// IsDegradedMode reports whether the durable backend was configured but lost.
func (f *Factory) IsDegradedMode() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.degraded
}

// IsRedisHealthy reports whether Redis is configured and still serving.
// A health surface can distinguish "not configured" (both flags false) from
// "configured but down" (degraded true, healthy false).
func (f *Factory) IsRedisHealthy() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.redisConfigured && !f.degraded
}

func (f *Factory) backend() SessionStorage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.active
}

// noteFailure trips the permanent failover. An error from the live Redis
// backend counts as connectivity loss, with one exception: caller-side
// cancellation travels through the client as context.Canceled or
// context.DeadlineExceeded and says nothing about the backend, so it must
// not degrade storage. A key miss is nil,nil and never reaches here, and
// the memory backend does not error.
func (f *Factory) noteFailure(err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.degraded || !f.redisConfigured {
		return
	}
	f.degraded = true
	f.active = f.fallback
	f.logger.Warn("redis call failed, session storage failing over to in-memory", "err", err)
}

func (f *Factory) Get(ctx context.Context, id string) (*model.GameSession, error) {
	session, err := f.backend().Get(ctx, id)
	if err != nil {
		f.noteFailure(err)
	}
	return session, err
}

func (f *Factory) Set(ctx context.Context, id string, session *model.GameSession, ttl time.Duration) error {
	if err := f.backend().Set(ctx, id, session, ttl); err != nil {
		f.noteFailure(err)
		return err
	}
	return nil
}

func (f *Factory) Delete(ctx context.Context, id string) error {
	if err := f.backend().Delete(ctx, id); err != nil {
		f.noteFailure(err)
		return err
	}
	return nil
}

func (f *Factory) Count(ctx context.Context) (int, error) {
	n, err := f.backend().Count(ctx)
	if err != nil {
		f.noteFailure(err)
	}
	return n, err
}

func (f *Factory) Cleanup(ctx context.Context) (int, error) {
	n, err := f.backend().Cleanup(ctx)
	if err != nil {
		f.noteFailure(err)
	}
	return n, err
}
