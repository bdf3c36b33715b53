package game

import (
	"reflect"
	"testing"

	"triviarena/internal/model"
)

func TestAllowedDifficulties(t *testing.T) {
	tests := []struct {
		name         string
		correctCount int
		pos, total   int
		want         []model.Difficulty
	}{
		{"no correct answers yet", 0, 2, 8, []model.Difficulty{model.DifficultyEasy}},
		{"one correct", 1, 3, 8, []model.Difficulty{model.DifficultyEasy}},
		{"warming up", 2, 4, 8, []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium}},
		{"three correct", 3, 5, 8, []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium}},
		{"on a run", 5, 6, 8, []model.Difficulty{model.DifficultyMedium, model.DifficultyHard}},
		{"final is always hard", 0, 7, 8, []model.Difficulty{model.DifficultyHard}},
		{"final overrides a perfect run", 7, 7, 8, []model.Difficulty{model.DifficultyHard}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllowedDifficulties(tt.correctCount, tt.pos, tt.total)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("AllowedDifficulties(%d, %d, %d) = %v, want %v",
					tt.correctCount, tt.pos, tt.total, got, tt.want)
			}
		})
	}
}

func TestPickAdaptivePrefersAllowed(t *testing.T) {
	ps := makePoolSet(t, 3, 3, 3)

	q, ok := PickAdaptive(ps, []model.Difficulty{model.DifficultyMedium, model.DifficultyHard}, map[string]bool{})
	if !ok {
		t.Fatal("PickAdaptive failed with full pools")
	}
	if q.Difficulty != model.DifficultyMedium {
		t.Fatalf("picked %s, want medium", q.Difficulty)
	}
}

func TestPickAdaptiveFallsBackThroughDisallowed(t *testing.T) {
	ps := makePoolSet(t, 2, 0, 0)

	q, ok := PickAdaptive(ps, []model.Difficulty{model.DifficultyHard}, map[string]bool{})
	if !ok {
		t.Fatal("PickAdaptive failed with easy questions left")
	}
	if q.Difficulty != model.DifficultyEasy {
		t.Fatalf("picked %s, want easy fallback", q.Difficulty)
	}
}

func TestPickAdaptiveSkipsUsed(t *testing.T) {
	ps := makePoolSet(t, 2, 0, 0)

	first, ok := PickAdaptive(ps, []model.Difficulty{model.DifficultyEasy}, map[string]bool{})
	if !ok {
		t.Fatal("first pick failed")
	}

	// A fresh pool set simulates the per-question rebuild; the used set
	// must keep the first question from being served twice.
	ps = makePoolSet(t, 2, 0, 0)
	used := map[string]bool{first.ID: true}
	second, ok := PickAdaptive(ps, []model.Difficulty{model.DifficultyEasy}, used)
	if !ok {
		t.Fatal("second pick failed")
	}
	if second.ID == first.ID {
		t.Fatalf("question %s served twice", first.ID)
	}
}

func TestPickAdaptiveExhausted(t *testing.T) {
	ps := makePoolSet(t, 1, 0, 0)
	used := map[string]bool{"easy-000": true}

	if _, ok := PickAdaptive(ps, []model.Difficulty{model.DifficultyEasy}, used); ok {
		t.Fatal("PickAdaptive succeeded with every candidate used")
	}
}
