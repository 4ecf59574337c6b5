package mastery

import (
	"slices"
	"time"

	"github.com/abhisek/docquiz/internal/store"
)

func toAttemptRecord(a AttemptSummary) store.AttemptRecord {
	return store.AttemptRecord{
		ID:                a.ID,
		UserID:            a.UserID,
		DocumentID:        a.DocumentID,
		Score:             a.Score,
		EarnedPoints:      a.EarnedPoints,
		TotalPoints:       a.TotalPoints,
		QuestionsAnswered: a.QuestionsAnswered,
		CorrectAnswers:    a.CorrectAnswers,
		TimeTakenMinutes:  a.TimeTakenMinutes,
		CompletedAt:       a.CompletedAt,
	}
}

func fromAttemptRecord(r store.AttemptRecord) AttemptSummary {
	return AttemptSummary{
		ID:                r.ID,
		UserID:            r.UserID,
		DocumentID:        r.DocumentID,
		Score:             r.Score,
		EarnedPoints:      r.EarnedPoints,
		TotalPoints:       r.TotalPoints,
		QuestionsAnswered: r.QuestionsAnswered,
		CorrectAnswers:    r.CorrectAnswers,
		TimeTakenMinutes:  r.TimeTakenMinutes,
		CompletedAt:       r.CompletedAt,
	}
}

func toPerformanceData(r PerformanceRecord) store.PerformanceData {
	return store.PerformanceData{
		UserID:           r.UserID,
		DocumentID:       r.DocumentID,
		TotalAttempts:    r.TotalAttempts,
		BestScore:        r.BestScore,
		AverageScore:     r.AverageScore,
		TotalTimeMinutes: r.TotalTimeMinutes,
		MasteryLevel:     string(r.Level),
		LastAttemptDate:  r.LastAttemptDate,
		Scores:           slices.Clone(r.Scores),
		Version:          r.Version,
	}
}

func fromPerformanceData(d store.PerformanceData) PerformanceRecord {
	return PerformanceRecord{
		UserID:           d.UserID,
		DocumentID:       d.DocumentID,
		TotalAttempts:    d.TotalAttempts,
		BestScore:        d.BestScore,
		AverageScore:     d.AverageScore,
		TotalTimeMinutes: d.TotalTimeMinutes,
		Level:            Level(d.MasteryLevel),
		LastAttemptDate:  d.LastAttemptDate,
		Scores:           slices.Clone(d.Scores),
		Version:          d.Version,
	}
}

func studyDays(days []store.StudyDay) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = d.Day
	}
	return out
}

func fromStudyDays(days []store.StudyDay) []StudyDay {
	out := make([]StudyDay, len(days))
	for i, d := range days {
		out[i] = StudyDay{
			Date:              d.Day,
			Minutes:           d.Minutes,
			QuestionsAnswered: d.QuestionsAnswered,
			CorrectAnswers:    d.CorrectAnswers,
			PointsEarned:      d.PointsEarned,
		}
	}
	return out
}
