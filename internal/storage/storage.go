package storage

import (
	"context"
	"time"

	"triviarena/internal/model"
)

// SessionStorage is the persistence contract for game sessions. A missing
// session is reported as (nil, nil), not as an error.
type SessionStorage interface {
	Get(ctx context.Context, id string) (*model.GameSession, error)
	Set(ctx context.Context, id string, session *model.GameSession, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// Cleanup reclaims expired entries and reports how many were removed.
	// Backends that self-expire may make this a no-op.
	Cleanup(ctx context.Context) (int, error)
}
