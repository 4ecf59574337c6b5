package mastery

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/docquiz/internal/streak"
)

const (
	// PatternWindowDays is the number of days, ending today, that study
	// patterns look at.
	PatternWindowDays = 30

	// RecentSessionsShown is how many study days Patterns lists.
	RecentSessionsShown = 7

	// SuggestionWindowDays is how far back Suggestions looks for recent
	// attempt scores.
	SuggestionWindowDays = 14

	// ConsistentFrequency is the study frequency, in percent of the pattern
	// window, below which more regular study is suggested.
	ConsistentFrequency = 50.0
)

// StudyDay is a user's accumulated activity on one calendar day.
type StudyDay struct {
	Date              time.Time `json:"date"`
	Minutes           int       `json:"duration"`
	QuestionsAnswered int       `json:"questions_answered"`
	CorrectAnswers    int       `json:"correct_answers"`
	PointsEarned      int       `json:"points_earned"`
}

// Accuracy returns the percentage of the day's answers that were correct,
// rounded to one decimal.
func (d StudyDay) Accuracy() float64 {
	if d.QuestionsAnswered <= 0 {
		return 0
	}
	return round1(float64(d.CorrectAnswers) / float64(d.QuestionsAnswered) * 100)
}

// SessionSummary is one study day as listed in Patterns.
type SessionSummary struct {
	Date              string  `json:"date"`
	Duration          int     `json:"duration"`
	QuestionsAnswered int     `json:"questions_answered"`
	Accuracy          float64 `json:"accuracy"`
}

// Patterns describes a user's study habits over the last PatternWindowDays.
type Patterns struct {
	FrequencyPercent      float64          `json:"study_frequency_percentage"`
	AverageSessionMinutes float64          `json:"average_session_duration"`
	BestDay               string           `json:"best_study_day,omitempty"`
	TotalStudyDays        int              `json:"total_study_days"`
	Streak                streak.State     `json:"streak"`
	Recent                []SessionSummary `json:"recent_sessions"`
}

// StudyPatterns summarizes the study days that fall in the window ending on
// today's calendar day. The best day is the weekday with the most minutes;
// on a tie the weekday studied most recently wins. The streak is computed
// over the full history.
func StudyPatterns(days []StudyDay, today time.Time) Patterns {
	end := streak.Day(today)
	start := end.AddDate(0, 0, -(PatternWindowDays - 1))

	window := lo.Filter(days, func(d StudyDay, _ int) bool {
		day := streak.Day(d.Date)
		return !day.Before(start) && !day.After(end)
	})
	slices.SortStableFunc(window, func(a, b StudyDay) int {
		return b.Date.Compare(a.Date)
	})

	p := Patterns{
		FrequencyPercent: round1(float64(len(window)) / PatternWindowDays * 100),
		TotalStudyDays:   len(window),
		Streak: streak.Compute(lo.Map(days, func(d StudyDay, _ int) time.Time {
			return d.Date
		}), today),
		Recent: make([]SessionSummary, 0, min(len(window), RecentSessionsShown)),
	}
	if len(window) == 0 {
		return p
	}

	minutes := make(map[time.Weekday]int)
	var order []time.Weekday
	for _, d := range window {
		wd := d.Date.Weekday()
		if _, ok := minutes[wd]; !ok {
			order = append(order, wd)
		}
		minutes[wd] += d.Minutes
	}
	best := order[0]
	for _, wd := range order[1:] {
		if minutes[wd] > minutes[best] {
			best = wd
		}
	}
	p.BestDay = best.String()

	total := lo.SumBy(window, func(d StudyDay) int { return d.Minutes })
	p.AverageSessionMinutes = round1(float64(total) / float64(len(window)))

	for _, d := range window[:min(len(window), RecentSessionsShown)] {
		p.Recent = append(p.Recent, SessionSummary{
			Date:              d.Date.Format(time.DateOnly),
			Duration:          d.Minutes,
			QuestionsAnswered: d.QuestionsAnswered,
			Accuracy:          d.Accuracy(),
		})
	}
	return p
}

// DailyScore is the mean attempt score of one calendar day.
type DailyScore struct {
	Date         string   `json:"date"`
	AverageScore *float64 `json:"average_score"` // nil without attempts
	Attempts     int      `json:"attempts_count"`
}

// PerformanceOverTime returns one entry per calendar day from days before
// today through today, oldest first. Attempts are bucketed by their
// completion date in today's location.
func PerformanceOverTime(attempts []AttemptSummary, today time.Time, days int) []DailyScore {
	end := streak.Day(today)
	start := end.AddDate(0, 0, -max(days, 0))

	scores := make(map[time.Time][]float64)
	for _, a := range attempts {
		day := streak.Day(a.CompletedAt.In(today.Location()))
		if day.Before(start) || day.After(end) {
			continue
		}
		scores[day] = append(scores[day], a.Score)
	}

	var out []DailyScore
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ds := DailyScore{Date: d.Format(time.DateOnly), Attempts: len(scores[d])}
		if ds.Attempts > 0 {
			avg := round1(lo.Sum(scores[d]) / float64(ds.Attempts))
			ds.AverageScore = &avg
		}
		out = append(out, ds)
	}
	return out
}

// Priority ranks a suggestion.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Suggestion is a study recommendation.
type Suggestion struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Action      string   `json:"action"`
	Priority    Priority `json:"priority"`
}

// Suggestions derives recommendations from recent scores, per-kind results
// and study patterns:
//
//   - a mean score below 60 over the last SuggestionWindowDays asks to
//     review the fundamentals, below 80 to practice more;
//   - a weakest kind under WeakAccuracy asks to practice that kind;
//   - a study frequency under ConsistentFrequency asks for regular study.
func Suggestions(attempts []AttemptSummary, kinds []KindStats, p Patterns, now time.Time) []Suggestion {
	var out []Suggestion

	since := now.AddDate(0, 0, -SuggestionWindowDays)
	recent := lo.Filter(attempts, func(a AttemptSummary, _ int) bool {
		return !a.CompletedAt.Before(since)
	})
	if len(recent) > 0 {
		avg := lo.SumBy(recent, func(a AttemptSummary) float64 { return a.Score }) / float64(len(recent))
		switch {
		case avg < IntermediateThreshold:
			out = append(out, Suggestion{
				Type:        "performance",
				Title:       "Focus on Fundamentals",
				Description: "Your recent scores suggest reviewing basic concepts. Consider re-reading documents before taking quizzes.",
				Action:      "Review documents",
				Priority:    PriorityHigh,
			})
		case avg < 80:
			out = append(out, Suggestion{
				Type:        "performance",
				Title:       "Practice More",
				Description: "You're doing well but have room for improvement. Try taking more practice quizzes.",
				Action:      "Take more quizzes",
				Priority:    PriorityMedium,
			})
		}
	}

	if weak, ok := Weakest(kinds); ok {
		name := weak.Kind.DisplayName()
		out = append(out, Suggestion{
			Type:        "skill",
			Title:       fmt.Sprintf("Improve %s Questions", name),
			Description: fmt.Sprintf("You have %.1f%% accuracy on %s questions.", weak.AccuracyPercent, name),
			Action:      "Practice specific question type",
			Priority:    PriorityMedium,
		})
	}

	if p.FrequencyPercent < ConsistentFrequency {
		out = append(out, Suggestion{
			Type:        "habit",
			Title:       "Study More Consistently",
			Description: fmt.Sprintf("You've studied %.1f%% of days. Try to study more regularly.", p.FrequencyPercent),
			Action:      "Set daily study reminders",
			Priority:    PriorityHigh,
		})
	}
	return out
}
