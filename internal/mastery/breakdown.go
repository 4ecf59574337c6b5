package mastery

import (
	"math"
	"slices"

	"github.com/abhisek/docquiz/internal/quizgen"
)

// WeakAccuracy is the accuracy, in percent, below which a question kind is
// suggested for practice.
const WeakAccuracy = 70.0

// QuestionResult is the graded outcome of one answered question.
type QuestionResult struct {
	Kind         quizgen.Kind
	Correct      bool
	PointsEarned int
	MaxPoints    int
}

// KindStats summarizes the results for one question kind.
type KindStats struct {
	Kind            quizgen.Kind `json:"question_type"`
	Total           int          `json:"total_questions"`
	Correct         int          `json:"correct_answers"`
	PointsEarned    int          `json:"points_earned"`
	MaxPoints       int          `json:"max_points"`
	AccuracyPercent float64      `json:"accuracy_percentage"`
	ScorePercent    float64      `json:"score_percentage"`
}

// Breakdown groups results by question kind, best accuracy first. Ties keep
// the canonical kind order.
func Breakdown(results []QuestionResult) []KindStats {
	byKind := make(map[quizgen.Kind]*KindStats)
	for _, r := range results {
		ks, ok := byKind[r.Kind]
		if !ok {
			ks = &KindStats{Kind: r.Kind}
			byKind[r.Kind] = ks
		}
		ks.Total++
		if r.Correct {
			ks.Correct++
		}
		ks.PointsEarned += r.PointsEarned
		ks.MaxPoints += r.MaxPoints
	}

	out := make([]KindStats, 0, len(byKind))
	for _, kind := range quizgen.AllKinds() {
		ks, ok := byKind[kind]
		if !ok {
			continue
		}
		ks.AccuracyPercent = round1(float64(ks.Correct) / float64(ks.Total) * 100)
		ks.ScorePercent = round1(Score(ks.PointsEarned, ks.MaxPoints))
		out = append(out, *ks)
	}
	slices.SortStableFunc(out, func(a, b KindStats) int {
		switch {
		case a.AccuracyPercent > b.AccuracyPercent:
			return -1
		case a.AccuracyPercent < b.AccuracyPercent:
			return 1
		}
		return 0
	})
	return out
}

// Weakest returns the kind with the lowest accuracy if it is below
// WeakAccuracy.
func Weakest(stats []KindStats) (KindStats, bool) {
	if len(stats) == 0 {
		return KindStats{}, false
	}
	weakest := stats[0]
	for _, ks := range stats[1:] {
		if ks.AccuracyPercent < weakest.AccuracyPercent {
			weakest = ks
		}
	}
	return weakest, weakest.AccuracyPercent < WeakAccuracy
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
