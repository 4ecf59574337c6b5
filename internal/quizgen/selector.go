package quizgen

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Rand is the source of randomness used by generation. *rand.Rand from
// math/rand/v2 satisfies it; tests pass a seeded one.
type Rand interface {
	Float64() float64
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Preferred sentence length, in words, for the first selection tier.
const (
	minPreferredWords = 20
	maxPreferredWords = 50
	minFallbackWords  = 10
)

var weakOpeners = map[string]bool{"the": true, "this": true, "that": true, "it": true}

func hasUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

// goodSentence reports whether s is a first-tier candidate: a moderate
// length, an informative first word and at least one capital letter.
func goodSentence(s string) bool {
	words := strings.Fields(s)
	if len(words) < minPreferredWords || len(words) > maxPreferredWords {
		return false
	}
	if weakOpeners[strings.ToLower(words[0])] {
		return false
	}
	return hasUpper(s)
}

// SelectSentence draws a sentence from the pool, preferring well-formed
// mid-length sentences, then any sentence of 10+ words, then anything.
// It returns false only for an empty pool.
func SelectSentence(rng Rand, pool []string) (string, bool) {
	if len(pool) == 0 {
		return "", false
	}
	tiers := [][]string{
		lo.Filter(pool, func(s string, _ int) bool { return goodSentence(s) }),
		lo.Filter(pool, func(s string, _ int) bool { return len(strings.Fields(s)) >= minFallbackWords }),
		pool,
	}
	for _, tier := range tiers {
		if len(tier) > 0 {
			return tier[rng.IntN(len(tier))], true
		}
	}
	return "", false
}

// ChooseKind draws a question kind from the distribution. A malformed
// table whose mass falls short of the draw yields KindMultipleChoice.
func ChooseKind(rng Rand, dist Distribution) Kind {
	r := rng.Float64()
	var cumulative float64
	for _, w := range dist {
		cumulative += w.Probability
		if r <= cumulative {
			return w.Kind
		}
	}
	return KindMultipleChoice
}
