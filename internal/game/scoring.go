package game

import "triviarena/internal/model"

// Gameplay constants. The engine never measures wall-clock time itself; the
// caller enforces the timer and reports whole seconds remaining.
const (
	// QuestionSeconds is the per-question answer window at multiplier 1.0.
	QuestionSeconds = 25

	// BaseCorrectPoints is awarded for any correct answer.
	BaseCorrectPoints = 100

	// Speed bonus steps, in whole seconds remaining.
	FastBonusFloor   = 15
	QuickBonusFloor  = 5
	FastBonusPoints  = 50
	QuickBonusPoints = 25

	// PatternThreshold is how many flagged answers a session accumulates
	// before the speed-bonus penalty engages for later flagged answers.
	PatternThreshold = 3
)

// minResponseMs is the per-difficulty plausibility floor at multiplier 1.0.
// Answers faster than this are not humanly plausible reads of the question.
var minResponseMs = map[model.Difficulty]int64{
	model.DifficultyEasy:   300,
	model.DifficultyMedium: 400,
	model.DifficultyHard:   500,
}

// AnswerEvent is one answer submission as seen by the scoring engine.
// PriorFlags counts flagged answers already recorded in the session, not
// including this one.
type AnswerEvent struct {
	Correct       bool
	TimeRemaining int
	Flagged       bool
	PriorFlags    int
}

// SpeedBonus is a pure step function over whole seconds remaining.
func SpeedBonus(timeRemaining int) int {
	switch {
	case timeRemaining >= FastBonusFloor:
		return FastBonusPoints
	case timeRemaining >= QuickBonusFloor:
		return QuickBonusPoints
	default:
		return 0
	}
}

// Implausible reports whether a response beat the per-difficulty minimum
// human response time, scaled by the player's timer multiplier.
func Implausible(d model.Difficulty, timerMultiplier float64, responseTimeMs int64) bool {
	floor, ok := minResponseMs[d]
	if !ok {
		floor = minResponseMs[model.DifficultyMedium]
	}
	if timerMultiplier <= 0 {
		timerMultiplier = 1
	}
	return float64(responseTimeMs) < float64(floor)*timerMultiplier
}

// Score converts an answer event into a points breakdown. Base points depend
// only on correctness. The speed bonus is zeroed for a flagged answer once
// the session has already crossed the pattern threshold; the first flags
// below the threshold score normally, and unflagged answers are never
// penalized regardless of the session's flag count.
func Score(ev AnswerEvent) model.ScoreBreakdown {
	var b model.ScoreBreakdown
	if !ev.Correct {
		return b
	}
	b.BasePoints = BaseCorrectPoints
	bonus := SpeedBonus(ev.TimeRemaining)
	if ev.Flagged && ev.PriorFlags >= PatternThreshold {
		b.PenaltyApplied = true
		bonus = 0
	}
	b.SpeedBonus = bonus
	b.TotalPoints = b.BasePoints + b.SpeedBonus
	return b
}
