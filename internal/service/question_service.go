package service

import (
	_ "embed"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"triviarena/internal/model"
	"triviarena/internal/repository"
)

//go:embed starter_questions.json
var starterQuestionsJSON []byte

// PoolSource tells callers whether candidates came from the live content
// store or the embedded fallback set.
type PoolSource string

const (
	PoolSourceDatabase PoolSource = "database"
	PoolSourceFallback PoolSource = "fallback"
)

// PoolResult is a typed candidates result: "used fallback content" is
// observable through Source and Reason instead of being silently masked.
type PoolResult struct {
	Questions []model.Question
	Source    PoolSource
	Reason    string
}

// starterQuestion carries the collection tag for the embedded set, which the
// play payload otherwise hides.
type starterQuestion struct {
	model.Question
	Collection string `json:"collection"`
}

// QuestionService is the question pool provider. It owns the parsed starter
// set as explicit instance state, initialized once at construction.
type QuestionService struct {
	repo    repository.QuestionRepo // nil when the content store is not connected
	starter []model.Question
	logger  *slog.Logger
}

func NewQuestionService(repo repository.QuestionRepo, logger *slog.Logger) (*QuestionService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var raw []starterQuestion
	if err := json.Unmarshal(starterQuestionsJSON, &raw); err != nil {
		return nil, fmt.Errorf("parse starter questions: %w", err)
	}
	starter := make([]model.Question, 0, len(raw))
	for _, sq := range raw {
		q := sq.Question
		q.Collection = sq.Collection
		q.Active = true
		starter = append(starter, q)
	}
	return &QuestionService{
		repo:    repo,
		starter: starter,
		logger:  logger,
	}, nil
}

// StarterQuestions returns the embedded starter set (used by the seeder).
func (s *QuestionService) StarterQuestions() []model.Question {
	return s.starter
}

// Candidates returns the deduplicated active question list for a collection,
// minus excluded external IDs. When the content store is missing, failing,
// or empty for the collection, it degrades to the embedded starter set and
// says so in the result.
func (s *QuestionService) Candidates(ctx context.Context, collection string, excludeIDs []string) (*PoolResult, error) {
	if s.repo == nil {
		return s.fallbackResult(collection, excludeIDs, "content store not configured"), nil
	}

	questions, err := s.repo.GetByCollection(ctx, collection, excludeIDs)
	if err != nil {
		s.logger.Warn("content store query failed, serving fallback set",
			"collection", collection, "err", err)
		return s.fallbackResult(collection, excludeIDs, err.Error()), nil
	}
	if len(questions) == 0 {
		return s.fallbackResult(collection, excludeIDs, "collection empty"), nil
	}
	return &PoolResult{
		Questions: dedupeByID(questions),
		Source:    PoolSourceDatabase,
	}, nil
}

func (s *QuestionService) fallbackResult(collection string, excludeIDs []string, reason string) *PoolResult {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	matched := make([]model.Question, 0, len(s.starter))
	for _, q := range s.starter {
		if q.Collection == collection && !excluded[q.ID] {
			matched = append(matched, q)
		}
	}
	// An unknown collection falls back to the whole starter set rather than
	// an unplayable empty pool.
	if len(matched) == 0 {
		for _, q := range s.starter {
			if !excluded[q.ID] {
				matched = append(matched, q)
			}
		}
	}
	return &PoolResult{
		Questions: dedupeByID(matched),
		Source:    PoolSourceFallback,
		Reason:    reason,
	}
}

func dedupeByID(questions []model.Question) []model.Question {
	seen := make(map[string]bool, len(questions))
	out := questions[:0:0]
	for _, q := range questions {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}
