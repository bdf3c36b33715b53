package game

import (
	"fmt"
	"math/rand"

	"triviarena/internal/model"
)

// Mode is the closed set of whole-session selection strategies. Adding a
// mode means adding a constant and a case in Select; there is no string
// registry with a silent default.
type Mode int

const (
	// ModeProgressive ("easy-steps") walks difficulty tiers upward across
	// the session. Default.
	ModeProgressive Mode = iota
	// ModeBalanced ("classic") pins an easy opener and hard closer around a
	// shuffled mixed interior.
	ModeBalanced
)

const (
	modeNameProgressive = "easy-steps"
	modeNameBalanced    = "classic"
)

// ParseMode maps a wire name to a Mode. The empty string selects the
// default; anything else unknown is an error, not a silent fallback.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", modeNameProgressive:
		return ModeProgressive, nil
	case modeNameBalanced:
		return ModeBalanced, nil
	}
	return ModeProgressive, fmt.Errorf("unknown game mode %q", name)
}

func (m Mode) String() string {
	if m == ModeBalanced {
		return modeNameBalanced
	}
	return modeNameProgressive
}

// Select produces the ordered question list for a whole session: exactly
// target questions when the pools allow it, each pool entry used at most
// once, the final position drawn preferentially from the hard pool. A list
// shorter than target means every pool ran dry; that is a relaxed-constraint
// outcome for the caller to log, never an error.
func (m Mode) Select(ps *PoolSet, target int, rng *rand.Rand) []model.Question {
	if target <= 0 {
		return nil
	}
	switch m {
	case ModeBalanced:
		return selectBalanced(ps, target, rng)
	default:
		return selectProgressive(ps, target)
	}
}

// hardFirst is the preference order for the final position of any session.
var hardFirst = []model.Difficulty{model.DifficultyHard, model.DifficultyMedium, model.DifficultyEasy}

// progressivePrefs gives the pool preference order for position pos of n.
// The session quarters into tiers: easy openers, easy/medium, medium/hard,
// then a hard tail; each tier falls back through the remaining pools.
func progressivePrefs(pos, n int) []model.Difficulty {
	switch {
	case pos == n-1:
		return hardFirst
	case pos < n/2:
		return []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
	case pos < (3*n)/4:
		return []model.Difficulty{model.DifficultyMedium, model.DifficultyHard, model.DifficultyEasy}
	default:
		return hardFirst
	}
}

func selectProgressive(ps *PoolSet, target int) []model.Question {
	// Reserve the closer up front so the hard-final guarantee survives even
	// when the interior tiers would otherwise drain the hard pool.
	closer, haveCloser := ps.Draw(hardFirst...)

	out := make([]model.Question, 0, target)
	for pos := 0; pos < target-1; pos++ {
		q, ok := ps.Draw(progressivePrefs(pos, target)...)
		if !ok {
			break
		}
		out = append(out, q)
	}
	if haveCloser {
		out = append(out, closer)
	}
	return out
}

func selectBalanced(ps *PoolSet, target int, rng *rand.Rand) []model.Question {
	closer, haveCloser := ps.Draw(hardFirst...)
	if target == 1 {
		if haveCloser {
			return []model.Question{closer}
		}
		return nil
	}
	opener, haveOpener := ps.Draw(model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard)

	// Fixed per-difficulty quota for the interior, best-effort under
	// scarcity: any shortfall is topped up from a pooled random draw over
	// whatever is left, so the quota can be violated when pools run dry.
	interior := target - 2
	quota := interior / 3
	mid := make([]model.Question, 0, interior)
	for _, d := range model.Difficulties {
		for i := 0; i < quota; i++ {
			q, ok := ps.Draw(d)
			if !ok {
				break
			}
			mid = append(mid, q)
		}
	}
	for len(mid) < interior {
		q, ok := ps.DrawRandom(rng)
		if !ok {
			break
		}
		mid = append(mid, q)
	}

	// Endpoints stay fixed; only the interior is reordered.
	rng.Shuffle(len(mid), func(i, j int) { mid[i], mid[j] = mid[j], mid[i] })

	out := make([]model.Question, 0, target)
	if haveOpener {
		out = append(out, opener)
	}
	out = append(out, mid...)
	if haveCloser {
		out = append(out, closer)
	}
	return out
}
