package session

import "github.com/abhisek/docquiz/internal/grading"

// Progress tracks running totals over graded answers.
type Progress struct {
	Answered     int
	Correct      int
	PointsEarned int
	MaxPoints    int
	Accuracy     float64 // Correct / Answered (computed)
}

// Record adds a verdict to the totals.
func (p *Progress) Record(v grading.Verdict) {
	p.Answered++
	if v.IsCorrect {
		p.Correct++
	}
	p.PointsEarned += v.PointsEarned
	p.MaxPoints += v.MaxPoints
	if p.Answered > 0 {
		p.Accuracy = float64(p.Correct) / float64(p.Answered)
	}
}
