package game

import "triviarena/internal/model"

// AllowedDifficulties computes the tier set eligible for the question at
// 0-based position pos of a total-length adaptive session, from the running
// correct-answer count:
//
//	correct <= 1      -> easy
//	2 <= correct <= 3 -> easy, medium
//	correct >= 4      -> medium, hard
//
// The final position is always hard, overriding the count.
func AllowedDifficulties(correctCount, pos, total int) []model.Difficulty {
	if total > 0 && pos == total-1 {
		return []model.Difficulty{model.DifficultyHard}
	}
	switch {
	case correctCount <= 1:
		return []model.Difficulty{model.DifficultyEasy}
	case correctCount <= 3:
		return []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium}
	default:
		return []model.Difficulty{model.DifficultyMedium, model.DifficultyHard}
	}
}

// PickAdaptive draws the next question for an adaptive session: each allowed
// difficulty in listed order, then the remaining difficulties as fallback,
// skipping anything already used in this session. ok is false only when
// every pool is exhausted.
func PickAdaptive(ps *PoolSet, allowed []model.Difficulty, used map[string]bool) (model.Question, bool) {
	order := make([]model.Difficulty, 0, len(model.Difficulties))
	order = append(order, allowed...)
	for _, d := range model.Difficulties {
		seen := false
		for _, a := range allowed {
			if a == d {
				seen = true
				break
			}
		}
		if !seen {
			order = append(order, d)
		}
	}
	for _, d := range order {
		if q, ok := ps.pool(d).DrawSkip(used); ok {
			return q, true
		}
	}
	return model.Question{}, false
}
