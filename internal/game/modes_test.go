package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"triviarena/internal/model"
)

func assertNoDuplicates(t *testing.T, qs []model.Question) {
	t.Helper()
	seen := make(map[string]bool)
	for _, q := range qs {
		if seen[q.ID] {
			t.Fatalf("duplicate question %s in selection", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		want    Mode
		wantErr bool
	}{
		{"", ModeProgressive, false},
		{"easy-steps", ModeProgressive, false},
		{"classic", ModeBalanced, false},
		{"turbo", ModeProgressive, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q) expected error", tt.name)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", tt.name, got, err, tt.want)
		}
	}
}

func TestSelectFullPools(t *testing.T) {
	for _, mode := range []Mode{ModeProgressive, ModeBalanced} {
		t.Run(mode.String(), func(t *testing.T) {
			ps := makePoolSet(t, 10, 10, 10)
			got := mode.Select(ps, 8, rand.New(rand.NewSource(2)))

			require.Len(t, got, 8)
			assertNoDuplicates(t, got)
			require.Equal(t, model.DifficultyHard, got[7].Difficulty,
				"last position must be hard when hard questions exist")
		})
	}
}

func TestSelectProgressiveTiers(t *testing.T) {
	ps := makePoolSet(t, 10, 10, 10)
	got := ModeProgressive.Select(ps, 8, rand.New(rand.NewSource(3)))

	require.Len(t, got, 8)
	// Rich pools walk the tiers: easy half, medium band, hard tail.
	for i := 0; i < 4; i++ {
		require.Equal(t, model.DifficultyEasy, got[i].Difficulty, "position %d", i)
	}
	for i := 4; i < 6; i++ {
		require.Equal(t, model.DifficultyMedium, got[i].Difficulty, "position %d", i)
	}
	for i := 6; i < 8; i++ {
		require.Equal(t, model.DifficultyHard, got[i].Difficulty, "position %d", i)
	}
}

func TestSelectBalancedEndpoints(t *testing.T) {
	ps := makePoolSet(t, 10, 10, 10)
	got := ModeBalanced.Select(ps, 8, rand.New(rand.NewSource(4)))

	require.Len(t, got, 8)
	require.Equal(t, model.DifficultyEasy, got[0].Difficulty, "opener pins to easy")
	require.Equal(t, model.DifficultyHard, got[7].Difficulty, "closer pins to hard")
}

func TestSelectExhaustionReturnsShortList(t *testing.T) {
	for _, mode := range []Mode{ModeProgressive, ModeBalanced} {
		t.Run(mode.String(), func(t *testing.T) {
			ps := makePoolSet(t, 2, 1, 0)
			got := mode.Select(ps, 8, rand.New(rand.NewSource(5)))

			require.Len(t, got, 3, "short list, not an error")
			assertNoDuplicates(t, got)
		})
	}
}

func TestSelectLastIsHardEvenWhenHardIsScarce(t *testing.T) {
	for _, mode := range []Mode{ModeProgressive, ModeBalanced} {
		t.Run(mode.String(), func(t *testing.T) {
			ps := makePoolSet(t, 10, 10, 1)
			got := mode.Select(ps, 8, rand.New(rand.NewSource(6)))

			require.Len(t, got, 8)
			require.Equal(t, model.DifficultyHard, got[len(got)-1].Difficulty,
				"the single hard question must land on the final position")
		})
	}
}

func TestSelectEmptyPools(t *testing.T) {
	for _, mode := range []Mode{ModeProgressive, ModeBalanced} {
		got := mode.Select(makePoolSet(t, 0, 0, 0), 8, rand.New(rand.NewSource(7)))
		if len(got) != 0 {
			t.Fatalf("%s selected %d questions from empty pools", mode, len(got))
		}
	}
}

func TestSelectOnlyHardPool(t *testing.T) {
	ps := makePoolSet(t, 0, 0, 1)
	got := ModeProgressive.Select(ps, 8, rand.New(rand.NewSource(8)))

	require.Len(t, got, 1)
	require.Equal(t, model.DifficultyHard, got[0].Difficulty)
}

func TestSelectBalancedFallbackEndpoints(t *testing.T) {
	// No easy pool: the opener falls back medium-first, the closer stays hard.
	ps := makePoolSet(t, 0, 5, 5)
	got := ModeBalanced.Select(ps, 8, rand.New(rand.NewSource(9)))

	require.Len(t, got, 8)
	require.Equal(t, model.DifficultyMedium, got[0].Difficulty)
	require.Equal(t, model.DifficultyHard, got[7].Difficulty)
}
