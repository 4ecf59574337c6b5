// Package mastery folds completed quiz attempts into per-document
// performance records and tracks the study activity behind streaks.
package mastery

import (
	"errors"
	"slices"
	"time"

	"github.com/samber/lo"
)

// AttemptSummary is one finished quiz attempt.
type AttemptSummary struct {
	ID                string
	UserID            string
	DocumentID        string
	Score             float64 // percent of TotalPoints earned
	EarnedPoints      int
	TotalPoints       int
	QuestionsAnswered int
	CorrectAnswers    int
	TimeTakenMinutes  int
	CompletedAt       time.Time
}

// Validate checks that the summary identifies its owner and carries
// consistent counters.
func (a AttemptSummary) Validate() error {
	switch {
	case a.UserID == "":
		return errors.New("attempt has no user")
	case a.DocumentID == "":
		return errors.New("attempt has no document")
	case a.TotalPoints < 0 || a.EarnedPoints < 0 || a.EarnedPoints > a.TotalPoints:
		return errors.New("attempt points out of range")
	case a.CorrectAnswers < 0 || a.CorrectAnswers > a.QuestionsAnswered:
		return errors.New("attempt answer counts out of range")
	case a.TimeTakenMinutes < 0:
		return errors.New("attempt time is negative")
	case a.Score < 0 || a.Score > 100:
		return errors.New("attempt score out of range")
	}
	return nil
}

// Score returns earned as a percentage of total, 0 when total is 0.
func Score(earned, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(earned) / float64(total) * 100
}

// ElapsedMinutes returns the whole minutes between start and end, truncated.
func ElapsedMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// PerformanceRecord aggregates every attempt of a user on a document.
type PerformanceRecord struct {
	UserID           string    `json:"user_id"`
	DocumentID       string    `json:"document_id"`
	TotalAttempts    int       `json:"total_attempts"`
	BestScore        float64   `json:"best_score"`
	AverageScore     float64   `json:"average_score"`
	TotalTimeMinutes int       `json:"total_time_minutes"`
	Level            Level     `json:"mastery_level"`
	LastAttemptDate  time.Time `json:"last_attempt_date"`
	Scores           []float64 `json:"scores"`
	Version          int64     `json:"-"`
}

// RecordAttempt returns the record that results from folding a into
// existing. A nil existing record starts a new one. The average is the
// mean of every score seen, recomputed on each call. existing is not
// modified.
func RecordAttempt(existing *PerformanceRecord, a AttemptSummary) PerformanceRecord {
	rec := PerformanceRecord{UserID: a.UserID, DocumentID: a.DocumentID}
	if existing != nil {
		rec = *existing
		rec.Scores = slices.Clone(existing.Scores)
	}

	rec.TotalAttempts++
	rec.BestScore = max(rec.BestScore, a.Score)
	rec.Scores = append(rec.Scores, a.Score)
	rec.AverageScore = lo.Sum(rec.Scores) / float64(len(rec.Scores))
	rec.TotalTimeMinutes += a.TimeTakenMinutes
	rec.Level = LevelFor(rec.AverageScore)
	rec.LastAttemptDate = a.CompletedAt
	rec.Version++
	return rec
}
