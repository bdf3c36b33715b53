package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"triviarena/internal/model"
)

func newTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStorage(client), mr
}

// sampleSession exercises every field a resumed session depends on, including
// nested answer records and time fields.
func sampleSession(id string) *model.GameSession {
	created := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	return &model.GameSession{
		ID:         id,
		UserID:     "u1",
		Collection: "general",
		Mode:       "classic",
		Questions: []model.Question{
			{
				ID:           "q1",
				Text:         "What is the capital of France?",
				Options:      []string{"Paris", "Lyon", "Nice", "Lille"},
				CorrectIndex: 0,
				Difficulty:   model.DifficultyEasy,
				Topic:        "geography",
			},
		},
		Position:     1,
		TargetLength: 8,
		CorrectCount: 1,
		FlagCount:    1,
		TotalScore:   150,
		Answers: []model.AnswerRecord{
			{
				QuestionID:     "q1",
				OptionIndex:    0,
				Correct:        true,
				Flagged:        true,
				TimeRemaining:  20,
				ResponseTimeMs: 250,
				Points:         model.ScoreBreakdown{BasePoints: 100, SpeedBonus: 50, TotalPoints: 150},
				AnsweredAt:     created.Add(10 * time.Second),
			},
		},
		TimerMultiplier: 1.5,
		CreatedAt:       created,
		LastActive:      created.Add(10 * time.Second),
	}
}

func TestSessionKey(t *testing.T) {
	require.Equal(t, "session:abc", sessionKey("abc"))
}

func TestRedisSetGetRoundTrip(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	sess := sampleSession("s1")
	require.NoError(t, r.Set(ctx, sess.ID, sess, time.Hour))

	// The key must carry the TTL from the write itself; nothing else ever
	// touches expiry on this backend.
	require.Equal(t, time.Hour, mr.TTL(sessionKey("s1")))

	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, sess, got)
}

func TestRedisGetMissing(t *testing.T) {
	r, _ := newTestRedis(t)

	got, err := r.Get(context.Background(), "nope")
	require.NoError(t, err, "a key miss is not an error")
	require.Nil(t, got)
}

func TestRedisExpiryIsBackendOwned(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	sess := sampleSession("s1")
	require.NoError(t, r.Set(ctx, sess.ID, sess, time.Minute))

	// Cleanup never removes anything here; the backend expires the key on
	// its own once the TTL elapses.
	n, err := r.Cleanup(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)

	mr.FastForward(time.Minute + time.Second)
	got, err = r.Get(ctx, "s1")
	require.NoError(t, err)
	require.Nil(t, got, "an expired session reads as absent")
}

func TestRedisDeleteAndCount(t *testing.T) {
	r, _ := newTestRedis(t)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, r.Set(ctx, id, sampleSession(id), time.Hour))
	}
	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.NoError(t, r.Delete(ctx, "s2"))
	n, err = r.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// Deleting an absent key is not an error.
	require.NoError(t, r.Delete(ctx, "s2"))
}

func TestSessionWireDropsContentBookkeeping(t *testing.T) {
	r, _ := newTestRedis(t)
	ctx := context.Background()

	// Per-question content-store fields are deliberately not part of the
	// session payload; the session carries its own Collection.
	expires := time.Now().Add(time.Hour)
	sess := sampleSession("s1")
	sess.Questions[0].Collection = "general"
	sess.Questions[0].Active = true
	sess.Questions[0].ExpiresAt = &expires

	require.NoError(t, r.Set(ctx, sess.ID, sess, time.Hour))
	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)

	require.Empty(t, got.Questions[0].Collection)
	require.False(t, got.Questions[0].Active)
	require.Nil(t, got.Questions[0].ExpiresAt)
	require.Equal(t, "general", got.Collection, "the session keeps its collection")
}
