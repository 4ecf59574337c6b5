package grading

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"github.com/samber/lo"
)

// Weights of the two metrics combined by Similarity.
const (
	sequenceWeight = 0.6
	overlapWeight  = 0.4
)

// Normalize lowercases s, strips punctuation and collapses whitespace.
func Normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// SequenceRatio returns 2·LCS(a, b) / (|a|+|b|) over runes, where LCS is
// the length of the longest common subsequence. Two empty strings are
// identical.
func SequenceRatio(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1
	}
	return 2 * float64(lcs(ar, br)) / float64(total)
}

func lcs(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// WordOverlap compares the word sets of a and b. Exact matches count
// fully; leftover words whose Levenshtein similarity reaches typoSim are
// paired as typos and count half. With no typo pairs this is the Jaccard
// ratio |A∩B| / |A∪B|. It is 0 when either side has no words.
//
// The typo half-credit keeps a one-word misspelling in the partial band:
// for "mitocondria" against "mitochondria" the combined Similarity is
// about 0.77 with it and 0.57 with plain Jaccard, which would drop the
// answer below PartialThreshold to zero credit.
func WordOverlap(a, b string, typoSim float64) float64 {
	wa := lo.Uniq(strings.Fields(a))
	wb := lo.Uniq(strings.Fields(b))
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	exact := lo.Intersect(wa, wb)
	restA := lo.Without(wa, exact...)
	restB := lo.Without(wb, exact...)
	typos := typoPairs(restA, restB, typoSim)

	num := float64(len(exact)) + 0.5*float64(typos)
	den := float64(len(wa) + len(wb) - len(exact) - typos)
	return num / den
}

// typoPairs greedily pairs words across the two sets, best match first.
// Pairs are keyed by their sorted words so the count does not depend on
// argument order.
func typoPairs(a, b []string, threshold float64) int {
	if threshold <= 0 || len(a) == 0 || len(b) == 0 {
		return 0
	}
	type pair struct {
		x, y  string
		score float64
	}
	params := levenshtein.NewParams()
	var cands []pair
	for _, x := range a {
		for _, y := range b {
			if s := levenshtein.Similarity(x, y, params); s >= threshold {
				cands = append(cands, pair{x, y, s})
			}
		}
	}
	key := func(p pair) string {
		if p.x < p.y {
			return p.x + "\x00" + p.y
		}
		return p.y + "\x00" + p.x
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return key(cands[i]) < key(cands[j])
	})

	usedA, usedB := map[string]bool{}, map[string]bool{}
	n := 0
	for _, c := range cands {
		if usedA[c.x] || usedB[c.y] {
			continue
		}
		usedA[c.x], usedB[c.y] = true, true
		n++
	}
	return n
}

// Similarity scores how alike two answers are, in [0, 1]. Both sides are
// normalized first; an empty side scores 0. The score is symmetric and
// 1 for identical non-empty input.
func Similarity(a, b string, typoSim float64) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	return sequenceWeight*SequenceRatio(na, nb) + overlapWeight*WordOverlap(na, nb, typoSim)
}

// KeywordScore returns the share of the expected answer's words longer
// than minLen characters that also appear in the given answer.
func KeywordScore(expected, given string, minLen int) float64 {
	long := func(w string, _ int) bool { return len([]rune(w)) > minLen }
	want := lo.Filter(strings.Fields(Normalize(expected)), long)
	if len(want) == 0 {
		return 0
	}
	have := lo.Filter(strings.Fields(Normalize(given)), long)
	hits := lo.CountBy(want, func(w string) bool { return lo.Contains(have, w) })
	return float64(hits) / float64(len(want))
}
