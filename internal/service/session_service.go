package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"triviarena/internal/game"
	"triviarena/internal/model"
	"triviarena/internal/storage"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrSessionComplete = errors.New("session already complete")
	ErrNoQuestions     = errors.New("no questions available")
)

// StartGameRequest describes a new play session.
type StartGameRequest struct {
	Collection      string
	Mode            string
	Adaptive        bool
	UserID          string
	TimerMultiplier float64
	// SeenQuestionIDs are external IDs the player saw recently; the content
	// provider excludes them from the candidate pool.
	SeenQuestionIDs []string
}

// AnswerRequest is one answer submission for the session's current question.
type AnswerRequest struct {
	OptionIndex    int
	TimeRemaining  int
	ResponseTimeMs int64
}

// AnswerResult is returned to the caller after scoring one answer.
type AnswerResult struct {
	Correct      bool                 `json:"correct"`
	CorrectIndex int                  `json:"correctIndex"`
	Explanation  string               `json:"explanation"`
	DeepDive     string               `json:"deepDive,omitempty"`
	Flagged      bool                 `json:"flagged"`
	Points       model.ScoreBreakdown `json:"points"`
	SessionScore int                  `json:"sessionScore"`
	Position     int                  `json:"position"`
	Complete     bool                 `json:"complete"`
	// NextQuestion is set for adaptive sessions that still have room.
	NextQuestion *model.Question `json:"nextQuestion,omitempty"`
}

// SessionService owns the game session lifecycle: selection at start,
// scoring on every answer, persistence through the storage factory.
type SessionService struct {
	questions   *QuestionService
	store       *storage.Factory
	broadcaster Broadcaster
	logger      *slog.Logger

	sessionTTL   time.Duration
	targetLength int
}

func NewSessionService(questions *QuestionService, store *storage.Factory, logger *slog.Logger, sessionTTL time.Duration, targetLength int) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	if targetLength <= 0 {
		targetLength = 8
	}
	return &SessionService{
		questions:    questions,
		store:        store,
		logger:       logger,
		sessionTTL:   sessionTTL,
		targetLength: targetLength,
	}
}

// SetBroadcaster wires the live-event sink.
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start selects the session's questions and persists the new session.
func (s *SessionService) Start(ctx context.Context, req StartGameRequest) (*model.GameSession, error) {
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	pool, err := s.questions.Candidates(ctx, req.Collection, req.SeenQuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("load question pool: %w", err)
	}
	if pool.Source == PoolSourceFallback {
		s.logger.Info("session starting on fallback content",
			"collection", req.Collection, "reason", pool.Reason)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pools := game.NewPoolSet(pool.Questions, rng)

	var selected []model.Question
	if req.Adaptive {
		q, ok := game.PickAdaptive(pools, game.AllowedDifficulties(0, 0, s.targetLength), map[string]bool{})
		if ok {
			selected = []model.Question{q}
		}
	} else {
		selected = mode.Select(pools, s.targetLength, rng)
	}
	selected = s.dropDuplicates(selected)
	if len(selected) == 0 {
		return nil, ErrNoQuestions
	}
	if !req.Adaptive && len(selected) < s.targetLength {
		s.logger.Warn("selection relaxed: pools exhausted before target length",
			"collection", req.Collection, "mode", mode.String(),
			"selected", len(selected), "target", s.targetLength, "source", pool.Source)
	}

	now := time.Now()
	session := &model.GameSession{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		Collection:      req.Collection,
		Mode:            mode.String(),
		Adaptive:        req.Adaptive,
		Questions:       selected,
		TargetLength:    s.targetLength,
		TimerMultiplier: normalizeMultiplier(req.TimerMultiplier),
		CreatedAt:       now,
		LastActive:      now,
	}
	if err := s.store.Set(ctx, session.ID, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// Get fetches a live session.
func (s *SessionService) Get(ctx context.Context, id string) (*model.GameSession, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete ends a session explicitly.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// SubmitAnswer scores the current question, updates the session's running
// tallies and, for adaptive sessions, picks the next question. Submissions
// are assumed serialized per session by the caller; the write is a plain
// read-modify-write with last-write-wins semantics.
func (s *SessionService) SubmitAnswer(ctx context.Context, sessionID string, req AnswerRequest) (*AnswerResult, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	question := session.CurrentQuestion()
	if question == nil || session.Complete() {
		return nil, ErrSessionComplete
	}

	// An out-of-range option index is scored as a wrong answer, not
	// rejected: the timer expiring client-side submits -1.
	correct := req.OptionIndex >= 0 &&
		req.OptionIndex < len(question.Options) &&
		req.OptionIndex == question.CorrectIndex
	flagged := game.Implausible(question.Difficulty, session.TimerMultiplier, req.ResponseTimeMs)
	breakdown := game.Score(game.AnswerEvent{
		Correct:       correct,
		TimeRemaining: req.TimeRemaining,
		Flagged:       flagged,
		PriorFlags:    session.FlagCount,
	})
	if breakdown.PenaltyApplied {
		s.logger.Info("speed bonus suppressed by flag pattern",
			"session", session.ID, "flags", session.FlagCount+1)
	}

	session.Answers = append(session.Answers, model.AnswerRecord{
		QuestionID:     question.ID,
		OptionIndex:    req.OptionIndex,
		Correct:        correct,
		Flagged:        flagged,
		TimeRemaining:  req.TimeRemaining,
		ResponseTimeMs: req.ResponseTimeMs,
		Points:         breakdown,
		AnsweredAt:     time.Now(),
	})
	if correct {
		session.CorrectCount++
	}
	if flagged {
		session.FlagCount++
	}
	session.TotalScore += breakdown.TotalPoints
	session.Position++

	result := &AnswerResult{
		Correct:      correct,
		CorrectIndex: question.CorrectIndex,
		Explanation:  question.Explanation,
		DeepDive:     question.DeepDive,
		Flagged:      flagged,
		Points:       breakdown,
		SessionScore: session.TotalScore,
		Position:     session.Position,
	}

	if session.Adaptive && session.Position < session.TargetLength {
		if next, ok := s.nextAdaptive(ctx, session); ok {
			session.Questions = append(session.Questions, next)
			result.NextQuestion = &session.Questions[len(session.Questions)-1]
		} else {
			s.logger.Warn("adaptive pools exhausted, ending session early",
				"session", session.ID, "position", session.Position)
		}
	}

	session.Touch()
	result.Complete = session.Complete()

	if err := s.store.Set(ctx, sessionID, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToWatchers(session.ID, "answer_scored", map[string]interface{}{
			"position":     result.Position,
			"correct":      result.Correct,
			"points":       result.Points,
			"sessionScore": result.SessionScore,
		})
		if result.Complete {
			s.broadcaster.BroadcastToWatchers(session.ID, "session_complete", map[string]interface{}{
				"sessionScore": session.TotalScore,
				"correctCount": session.CorrectCount,
				"questions":    len(session.Questions),
			})
		}
	}
	return result, nil
}

// nextAdaptive rebuilds session-scoped pools from the provider (minus
// everything already used) and picks one question for the upcoming position.
func (s *SessionService) nextAdaptive(ctx context.Context, session *model.GameSession) (model.Question, bool) {
	used := session.UsedIDs()
	exclude := make([]string, 0, len(used))
	for id := range used {
		exclude = append(exclude, id)
	}

	pool, err := s.questions.Candidates(ctx, session.Collection, exclude)
	if err != nil {
		s.logger.Warn("adaptive refill failed", "session", session.ID, "err", err)
		return model.Question{}, false
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pools := game.NewPoolSet(pool.Questions, rng)
	allowed := game.AllowedDifficulties(session.CorrectCount, session.Position, session.TargetLength)
	return game.PickAdaptive(pools, allowed, used)
}

// dropDuplicates enforces the no-duplicate invariant as a safety net. A hit
// here is a defect signal from selection or content, logged, not fatal.
func (s *SessionService) dropDuplicates(questions []model.Question) []model.Question {
	seen := make(map[string]bool, len(questions))
	out := questions[:0]
	for _, q := range questions {
		if seen[q.ID] {
			s.logger.Error("duplicate question in selection, dropping", "questionId", q.ID)
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}

// normalizeMultiplier clamps the timer multiplier to the supported
// accessibility settings.
func normalizeMultiplier(m float64) float64 {
	switch m {
	case 1.5, 2.0:
		return m
	default:
		return 1.0
	}
}
