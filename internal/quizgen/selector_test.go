package quizgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int, first string) string {
	w := make([]string, n)
	w[0] = first
	for i := 1; i < n; i++ {
		w[i] = "word"
	}
	return strings.Join(w, " ")
}

func TestSelectSentence_Tiers(t *testing.T) {
	good := words(25, "Researchers")
	weakOpener := words(25, "The")
	lowercase := words(25, "researchers")
	medium := words(12, "cells")
	short := "Short one here"

	rng := NewRand(1)

	// Tier 1 wins whenever it has a candidate.
	for i := 0; i < 50; i++ {
		s, ok := SelectSentence(rng, []string{short, medium, weakOpener, good, lowercase})
		require.True(t, ok)
		assert.Equal(t, good, s)
	}

	// Without tier 1 candidates, any sentence of 10+ words qualifies.
	for i := 0; i < 50; i++ {
		s, ok := SelectSentence(rng, []string{short, medium, weakOpener, lowercase})
		require.True(t, ok)
		assert.NotEqual(t, short, s)
	}

	// Otherwise anything in the pool.
	s, ok := SelectSentence(rng, []string{short})
	assert.True(t, ok)
	assert.Equal(t, short, s)

	_, ok = SelectSentence(rng, nil)
	assert.False(t, ok)
}

func TestSelectSentence_WholeWordOpener(t *testing.T) {
	theory := words(22, "Theory")
	s, ok := SelectSentence(fixedRand{}, []string{words(22, "This"), theory})
	require.True(t, ok)
	assert.Equal(t, theory, s)
}

func TestSelectSentence_LengthBounds(t *testing.T) {
	tooLong := words(51, "Long")
	exact := words(50, "Exact")
	s, _ := SelectSentence(fixedRand{}, []string{tooLong, exact})
	assert.Equal(t, exact, s)
}

func TestChooseKind(t *testing.T) {
	easy := DefaultDistributions()[DifficultyEasy]
	tests := []struct {
		r    float64
		want Kind
	}{
		{0, KindMultipleChoice},
		{0.4, KindMultipleChoice},
		{0.41, KindTrueFalse},
		{0.79, KindTrueFalse},
		{0.85, KindFillBlank},
		{0.999, KindFillBlank},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChooseKind(fixedRand{f: tt.r}, easy), "r=%v", tt.r)
	}
}

func TestChooseKind_MalformedFallsBack(t *testing.T) {
	short := Distribution{{KindTrueFalse, 0.2}, {KindShortAnswer, 0.1}}
	assert.Equal(t, KindMultipleChoice, ChooseKind(fixedRand{f: 0.5}, short))
	assert.Equal(t, KindMultipleChoice, ChooseKind(fixedRand{f: 0.1}, nil))
	assert.Equal(t, KindTrueFalse, ChooseKind(fixedRand{f: 0.1}, short))
}

func TestChooseKind_MatchesDistribution(t *testing.T) {
	const draws = 20000
	rng := NewRand(42)
	for diff, dist := range DefaultDistributions() {
		counts := map[Kind]int{}
		for i := 0; i < draws; i++ {
			counts[ChooseKind(rng, dist)]++
		}
		for _, w := range dist {
			got := float64(counts[w.Kind]) / draws
			assert.InDelta(t, w.Probability, got, 0.02, "%s/%s", diff, w.Kind)
		}
		if diff == DifficultyEasy {
			assert.Zero(t, counts[KindShortAnswer])
		}
	}
}

func TestDistractors(t *testing.T) {
	rng := NewRand(7)
	for _, term := range []string{"mitochondria", "ATP", "Paris", "None of the above", "x", "Marie Curie"} {
		for _, n := range []int{1, 3, 8, 15} {
			got := Distractors(rng, term, n)
			require.Len(t, got, n, "%s n=%d", term, n)
			seen := map[string]bool{}
			for _, d := range got {
				key := strings.ToLower(d)
				assert.NotEqual(t, strings.ToLower(term), key)
				assert.False(t, seen[key], "duplicate %q for %q", d, term)
				seen[key] = true
			}
		}
	}
	assert.Empty(t, Distractors(rng, "term", 0))
}

func TestDistractorPool(t *testing.T) {
	assert.Equal(t, []string{
		"Pariss",
		"Not Paris",
		"Peris",
		"None of the above",
		"All of the above",
		"Cannot be determined",
		"Not mentioned in the text",
	}, distractorPool("Paris"))

	pool := distractorPool("cell")
	assert.Contains(t, pool, "celling")
	assert.NotContains(t, pool, "CELL")
}

func TestDistractors_PadsWithPlaceholders(t *testing.T) {
	got := Distractors(fixedRand{}, "Option 1", 12)
	require.Len(t, got, 12)
	assert.NotContains(t, got, "Option 1")
	assert.Contains(t, got, "Option 2")
}
