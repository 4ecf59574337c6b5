package session

import (
	"time"

	"github.com/abhisek/docquiz/internal/mastery"
)

// Summary holds the data shown when a session ends.
type Summary struct {
	Duration       time.Duration
	TotalQuestions int
	Answered       int
	Correct        int
	Accuracy       float64
	EarnedPoints   int
	TotalPoints    int
	Score          float64
	Kinds          []mastery.KindStats
}

// BuildSummary summarizes the session as of end.
func BuildSummary(s *Session, end time.Time) *Summary {
	p := s.Progress()
	total := s.Quiz.TotalPoints()
	return &Summary{
		Duration:       end.Sub(s.StartTime),
		TotalQuestions: s.Len(),
		Answered:       p.Answered,
		Correct:        p.Correct,
		Accuracy:       p.Accuracy,
		EarnedPoints:   p.PointsEarned,
		TotalPoints:    total,
		Score:          mastery.Score(p.PointsEarned, total),
		Kinds:          mastery.Breakdown(s.Results()),
	}
}
