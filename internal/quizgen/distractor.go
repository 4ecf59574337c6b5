package quizgen

import (
	"fmt"
	"strings"
)

var genericDistractors = []string{
	"None of the above",
	"All of the above",
	"Cannot be determined",
	"Not mentioned in the text",
}

// distractorPool returns the candidate wrong answers for term, with
// case-insensitive duplicates of the term and of each other removed.
func distractorPool(term string) []string {
	variant := term + "ing"
	if strings.Contains(term, "a") {
		variant = strings.ReplaceAll(term, "a", "e")
	}
	candidates := append([]string{
		strings.ToUpper(term),
		strings.ToLower(term),
		term + "s",
		"Not " + term,
		variant,
	}, genericDistractors...)

	seen := map[string]bool{strings.ToLower(term): true}
	var pool []string
	for _, c := range candidates {
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		pool = append(pool, c)
	}
	return pool
}

// Distractors returns exactly n wrong answers for term. None equals the
// term case-insensitively and all are distinct. When the candidate pool
// runs short the result is padded with "Option k" placeholders.
func Distractors(rng Rand, term string, n int) []string {
	if n <= 0 {
		return nil
	}
	pool := distractorPool(term)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}

	taken := map[string]bool{strings.ToLower(term): true}
	for _, p := range pool {
		taken[strings.ToLower(p)] = true
	}
	for k := 1; len(pool) < n; k++ {
		placeholder := fmt.Sprintf("Option %d", k)
		if taken[strings.ToLower(placeholder)] {
			continue
		}
		taken[strings.ToLower(placeholder)] = true
		pool = append(pool, placeholder)
	}
	return pool
}
