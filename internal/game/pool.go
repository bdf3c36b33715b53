package game

import (
	"math/rand"

	"triviarena/internal/model"
)

// Pool is a shuffled run of same-difficulty questions consumed front to
// back. Consumption advances a cursor; the backing slice never shrinks.
type Pool struct {
	questions []model.Question
	next      int
}

// NewPool copies and shuffles the given questions.
func NewPool(questions []model.Question, rng *rand.Rand) *Pool {
	qs := make([]model.Question, len(questions))
	copy(qs, questions)
	rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	return &Pool{questions: qs}
}

// Draw consumes the next question. ok is false when the pool is exhausted.
func (p *Pool) Draw() (model.Question, bool) {
	if p.next >= len(p.questions) {
		return model.Question{}, false
	}
	q := p.questions[p.next]
	p.next++
	return q, true
}

// DrawSkip consumes questions until one is found whose ID is not in used.
func (p *Pool) DrawSkip(used map[string]bool) (model.Question, bool) {
	for p.next < len(p.questions) {
		q := p.questions[p.next]
		p.next++
		if !used[q.ID] {
			return q, true
		}
	}
	return model.Question{}, false
}

// Remaining reports how many questions are left to draw.
func (p *Pool) Remaining() int {
	return len(p.questions) - p.next
}

// PoolSet groups the three difficulty pools owned by one selection run.
type PoolSet struct {
	easy, medium, hard *Pool
}

// NewPoolSet partitions candidates by difficulty and shuffles each pool.
func NewPoolSet(candidates []model.Question, rng *rand.Rand) *PoolSet {
	byDiff := make(map[model.Difficulty][]model.Question, 3)
	for _, q := range candidates {
		byDiff[q.Difficulty] = append(byDiff[q.Difficulty], q)
	}
	return &PoolSet{
		easy:   NewPool(byDiff[model.DifficultyEasy], rng),
		medium: NewPool(byDiff[model.DifficultyMedium], rng),
		hard:   NewPool(byDiff[model.DifficultyHard], rng),
	}
}

func (ps *PoolSet) pool(d model.Difficulty) *Pool {
	switch d {
	case model.DifficultyEasy:
		return ps.easy
	case model.DifficultyHard:
		return ps.hard
	default:
		return ps.medium
	}
}

// Draw tries each difficulty in the order given and returns the first hit.
func (ps *PoolSet) Draw(prefs ...model.Difficulty) (model.Question, bool) {
	for _, d := range prefs {
		if q, ok := ps.pool(d).Draw(); ok {
			return q, true
		}
	}
	return model.Question{}, false
}

// DrawRandom pools every unused question across all difficulties and draws
// one uniformly at random.
func (ps *PoolSet) DrawRandom(rng *rand.Rand) (model.Question, bool) {
	total := ps.Remaining()
	if total == 0 {
		return model.Question{}, false
	}
	n := rng.Intn(total)
	for _, p := range []*Pool{ps.easy, ps.medium, ps.hard} {
		if n < p.Remaining() {
			return p.Draw()
		}
		n -= p.Remaining()
	}
	return model.Question{}, false
}

// Remaining reports the total questions left across all three pools.
func (ps *PoolSet) Remaining() int {
	return ps.easy.Remaining() + ps.medium.Remaining() + ps.hard.Remaining()
}
