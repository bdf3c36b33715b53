package model

import "time"

// ScoreBreakdown is the ephemeral per-answer scoring result.
type ScoreBreakdown struct {
	BasePoints     int  `json:"basePoints"`
	SpeedBonus     int  `json:"speedBonus"`
	TotalPoints    int  `json:"totalPoints"`
	PenaltyApplied bool `json:"penaltyApplied"`
}

// AnswerRecord is one submitted answer as stored on the session.
type AnswerRecord struct {
	QuestionID     string         `json:"questionId"`
	OptionIndex    int            `json:"optionIndex"`
	Correct        bool           `json:"correct"`
	Flagged        bool           `json:"flagged"`
	TimeRemaining  int            `json:"timeRemaining"`
	ResponseTimeMs int64          `json:"responseTimeMs"`
	Points         ScoreBreakdown `json:"points"`
	AnsweredAt     time.Time      `json:"answeredAt"`
}

// GameSession is the unit of durable state for one play-through.
// Invariants: Questions never contains a duplicate ID, and entries are only
// appended (adaptive play) or fixed at creation, never reordered.
//
// Questions snapshots only the play-facing fields. The content-store
// bookkeeping on Question (collection, active flag, expiry) is dropped on
// the wire on purpose: it only matters during selection, and the session
// carries its own Collection for adaptive refills.
type GameSession struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId,omitempty"` // empty for anonymous play
	Collection      string         `json:"collection"`
	Mode            string         `json:"mode"`
	Adaptive        bool           `json:"adaptive"`
	Questions       []Question     `json:"questions"`
	Position        int            `json:"position"`
	TargetLength    int            `json:"targetLength"`
	CorrectCount    int            `json:"correctCount"`
	FlagCount       int            `json:"flagCount"`
	TotalScore      int            `json:"totalScore"`
	Answers         []AnswerRecord `json:"answers"`
	TimerMultiplier float64        `json:"timerMultiplier"`
	CreatedAt       time.Time      `json:"createdAt"`
	LastActive      time.Time      `json:"lastActive"`
}

// CurrentQuestion returns the question awaiting an answer, or nil when the
// session has none left.
func (s *GameSession) CurrentQuestion() *Question {
	if s.Position < 0 || s.Position >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Position]
}

// Complete reports whether the session has no further questions to serve.
// An adaptive session may finish short of its target when content runs out.
func (s *GameSession) Complete() bool {
	if s.Position >= len(s.Questions) {
		return true
	}
	return s.TargetLength > 0 && s.Position >= s.TargetLength
}

// UsedIDs returns the set of question IDs already selected for this session.
func (s *GameSession) UsedIDs() map[string]bool {
	used := make(map[string]bool, len(s.Questions))
	for i := range s.Questions {
		used[s.Questions[i].ID] = true
	}
	return used
}

// Touch records activity so idle expiry is pushed out.
func (s *GameSession) Touch() {
	s.LastActive = time.Now()
}
