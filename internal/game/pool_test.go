package game

import (
	"fmt"
	"math/rand"
	"testing"

	"triviarena/internal/model"
)

func makeQuestions(d model.Difficulty, n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			ID:         fmt.Sprintf("%s-%03d", d, i),
			Text:       fmt.Sprintf("question %s %d", d, i),
			Options:    []string{"a", "b", "c", "d"},
			Difficulty: d,
		}
	}
	return qs
}

func makePoolSet(t *testing.T, easy, medium, hard int) *PoolSet {
	t.Helper()
	var all []model.Question
	all = append(all, makeQuestions(model.DifficultyEasy, easy)...)
	all = append(all, makeQuestions(model.DifficultyMedium, medium)...)
	all = append(all, makeQuestions(model.DifficultyHard, hard)...)
	return NewPoolSet(all, rand.New(rand.NewSource(1)))
}

func TestPoolDrawConsumes(t *testing.T) {
	p := NewPool(makeQuestions(model.DifficultyEasy, 3), rand.New(rand.NewSource(1)))

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		q, ok := p.Draw()
		if !ok {
			t.Fatalf("draw %d failed with %d remaining", i, p.Remaining())
		}
		if seen[q.ID] {
			t.Fatalf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
	if _, ok := p.Draw(); ok {
		t.Fatal("draw succeeded on exhausted pool")
	}
	if p.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", p.Remaining())
	}
}

func TestPoolDrawSkip(t *testing.T) {
	qs := makeQuestions(model.DifficultyHard, 4)
	p := &Pool{questions: qs} // unshuffled so the skip order is known

	used := map[string]bool{qs[0].ID: true, qs[1].ID: true}
	q, ok := p.DrawSkip(used)
	if !ok {
		t.Fatal("DrawSkip failed with unused questions left")
	}
	if q.ID != qs[2].ID {
		t.Fatalf("DrawSkip = %s, want %s", q.ID, qs[2].ID)
	}
}

func TestPoolSetDrawFallback(t *testing.T) {
	ps := makePoolSet(t, 0, 2, 1)

	q, ok := ps.Draw(model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard)
	if !ok {
		t.Fatal("Draw failed with questions available")
	}
	if q.Difficulty != model.DifficultyMedium {
		t.Fatalf("fallback drew %s, want medium", q.Difficulty)
	}
}

func TestPoolSetDrawRandomDrains(t *testing.T) {
	ps := makePoolSet(t, 2, 2, 2)
	rng := rand.New(rand.NewSource(7))

	seen := make(map[string]bool)
	for i := 0; i < 6; i++ {
		q, ok := ps.DrawRandom(rng)
		if !ok {
			t.Fatalf("DrawRandom failed at %d with %d remaining", i, ps.Remaining())
		}
		if seen[q.ID] {
			t.Fatalf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
	if _, ok := ps.DrawRandom(rng); ok {
		t.Fatal("DrawRandom succeeded on empty set")
	}
}
