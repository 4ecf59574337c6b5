package mastery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/docquiz/internal/quizgen"
	"github.com/abhisek/docquiz/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStudyDay_Accuracy(t *testing.T) {
	assert.Equal(t, 66.7, StudyDay{QuestionsAnswered: 3, CorrectAnswers: 2}.Accuracy())
	assert.Zero(t, StudyDay{Minutes: 5}.Accuracy())
}

func TestStudyPatterns(t *testing.T) {
	today := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC) // a Sunday

	tests := []struct {
		name      string
		days      []StudyDay
		frequency float64
		average   float64
		bestDay   string
		total     int
		current   int
		recent    []string
	}{
		{
			name:   "no activity",
			recent: []string{},
		},
		{
			name: "window and best weekday",
			days: []StudyDay{
				{Date: date(2024, 2, 1), Minutes: 100},
				{Date: date(2024, 3, 3), Minutes: 25},
				{Date: date(2024, 3, 9), Minutes: 30, QuestionsAnswered: 10, CorrectAnswers: 5},
				{Date: date(2024, 3, 10), Minutes: 10, QuestionsAnswered: 5, CorrectAnswers: 4},
			},
			frequency: 10, average: 21.7, bestDay: "Sunday", total: 3, current: 2,
			recent: []string{"2024-03-10", "2024-03-09", "2024-03-03"},
		},
		{
			name: "window edges",
			days: []StudyDay{
				{Date: date(2024, 2, 9), Minutes: 5},
				{Date: date(2024, 2, 10), Minutes: 5},
				{Date: date(2024, 3, 11), Minutes: 5},
			},
			frequency: 3.3, average: 5, bestDay: "Saturday", total: 1,
			recent: []string{"2024-02-10"},
		},
		{
			name: "tie goes to the latest weekday",
			days: []StudyDay{
				{Date: date(2024, 3, 8), Minutes: 10},
				{Date: date(2024, 3, 9), Minutes: 10},
			},
			frequency: 6.7, average: 10, bestDay: "Saturday", total: 2,
			recent: []string{"2024-03-09", "2024-03-08"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := StudyPatterns(tt.days, today)
			assert.Equal(t, tt.frequency, p.FrequencyPercent)
			assert.Equal(t, tt.average, p.AverageSessionMinutes)
			assert.Equal(t, tt.bestDay, p.BestDay)
			assert.Equal(t, tt.total, p.TotalStudyDays)
			assert.Equal(t, tt.current, p.Streak.CurrentStreak)

			dates := make([]string, len(p.Recent))
			for i, s := range p.Recent {
				dates[i] = s.Date
			}
			assert.Equal(t, tt.recent, dates)
		})
	}
}

func TestStudyPatterns_RecentSessions(t *testing.T) {
	today := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	var days []StudyDay
	for i := 0; i < 10; i++ {
		days = append(days, StudyDay{Date: date(2024, 3, 1+i), Minutes: i, QuestionsAnswered: 4, CorrectAnswers: 1})
	}

	p := StudyPatterns(days, today)
	require.Len(t, p.Recent, RecentSessionsShown)
	assert.Equal(t, SessionSummary{Date: "2024-03-10", Duration: 9, QuestionsAnswered: 4, Accuracy: 25}, p.Recent[0])
	assert.Equal(t, "2024-03-04", p.Recent[6].Date)
	assert.Equal(t, 10, p.Streak.CurrentStreak)
	assert.Equal(t, 10, p.Streak.LongestStreak)
	assert.Equal(t, 33.3, p.FrequencyPercent)
}

func TestPerformanceOverTime(t *testing.T) {
	today := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	attempts := []AttemptSummary{
		{Score: 100, CompletedAt: time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)},
		{Score: 40, CompletedAt: time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)},
		{Score: 80, CompletedAt: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)},
		{Score: 91, CompletedAt: time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)},
	}

	got := PerformanceOverTime(attempts, today, 3)
	require.Len(t, got, 4)
	assert.Equal(t, "2024-03-07", got[0].Date)
	assert.Nil(t, got[0].AverageScore)
	assert.Zero(t, got[0].Attempts)
	require.NotNil(t, got[1].AverageScore)
	assert.Equal(t, 40.0, *got[1].AverageScore)
	assert.Nil(t, got[2].AverageScore)
	assert.Equal(t, "2024-03-10", got[3].Date)
	require.NotNil(t, got[3].AverageScore)
	assert.Equal(t, 85.5, *got[3].AverageScore)
	assert.Equal(t, 2, got[3].Attempts)
}

func TestPerformanceOverTime_LocalDays(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	today := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)
	attempts := []AttemptSummary{
		{Score: 70, CompletedAt: time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)}, // 9 pm on the 9th
	}

	got := PerformanceOverTime(attempts, today, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Attempts)
	assert.Zero(t, got[1].Attempts)
}

func TestSuggestions(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	recent := func(scores ...float64) []AttemptSummary {
		out := make([]AttemptSummary, len(scores))
		for i, s := range scores {
			out[i] = AttemptSummary{Score: s, CompletedAt: now.AddDate(0, 0, -i)}
		}
		return out
	}
	regular := Patterns{FrequencyPercent: 60}
	weakKinds := Breakdown([]QuestionResult{
		{Kind: quizgen.KindShortAnswer, Correct: true, PointsEarned: 3, MaxPoints: 3},
		{Kind: quizgen.KindShortAnswer, PointsEarned: 1, MaxPoints: 3},
		{Kind: quizgen.KindShortAnswer, PointsEarned: 1, MaxPoints: 3},
		{Kind: quizgen.KindTrueFalse, Correct: true, PointsEarned: 1, MaxPoints: 1},
	})

	tests := []struct {
		name     string
		attempts []AttemptSummary
		kinds    []KindStats
		patterns Patterns
		titles   []string
	}{
		{"nothing to suggest", nil, nil, regular, nil},
		{"low scores", recent(50, 60), nil, regular, []string{"Focus on Fundamentals"}},
		{"middling scores", recent(70, 75), nil, regular, []string{"Practice More"}},
		{"good scores", recent(90, 80), nil, regular, nil},
		{"old attempts ignored", []AttemptSummary{{Score: 10, CompletedAt: now.AddDate(0, 0, -20)}}, nil, regular, nil},
		{"weak kind", nil, weakKinds, regular, []string{"Improve Short Answer Questions"}},
		{"irregular study", nil, nil, Patterns{FrequencyPercent: 40}, []string{"Study More Consistently"}},
		{
			"everything", recent(30), weakKinds, Patterns{},
			[]string{"Focus on Fundamentals", "Improve Short Answer Questions", "Study More Consistently"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggestions(tt.attempts, tt.kinds, tt.patterns, now)
			var titles []string
			for _, s := range got {
				titles = append(titles, s.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestSuggestions_Details(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	kinds := []KindStats{{Kind: quizgen.KindFillBlank, Total: 2, AccuracyPercent: 50}}

	got := Suggestions(nil, kinds, Patterns{FrequencyPercent: 16.7}, now)
	require.Len(t, got, 2)
	assert.Equal(t, Suggestion{
		Type:        "skill",
		Title:       "Improve Fill in the Blank Questions",
		Description: "You have 50.0% accuracy on Fill in the Blank questions.",
		Action:      "Practice specific question type",
		Priority:    PriorityMedium,
	}, got[0])
	assert.Equal(t, "habit", got[1].Type)
	assert.Equal(t, PriorityHigh, got[1].Priority)
	assert.Equal(t, "You've studied 16.7% of days. Try to study more regularly.", got[1].Description)
}

func TestService_StudyAnalytics(t *testing.T) {
	repo := newMemRepo()
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	svc := NewService(repo, repo, nil, WithClock(fixedClock(now)))
	ctx := context.Background()

	_, err := svc.CompleteAttempt(ctx, summary(40, 12, now.Add(-time.Hour)))
	require.NoError(t, err)
	_, err = svc.CompleteAttempt(ctx, summary(60, 8, now.AddDate(0, 0, -1)))
	require.NoError(t, err)
	require.NoError(t, repo.RecordStudyDay(ctx, store.StudyDay{UserID: "u2", Day: date(2024, 3, 10), Minutes: 99}))

	p, err := svc.StudyPatterns(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalStudyDays)
	assert.Equal(t, 6.7, p.FrequencyPercent)
	assert.Equal(t, 10.0, p.AverageSessionMinutes)
	assert.Equal(t, "Sunday", p.BestDay)
	assert.Equal(t, 2, p.Streak.CurrentStreak)
	require.Len(t, p.Recent, 2)
	assert.Equal(t, SessionSummary{Date: "2024-03-10", Duration: 12, QuestionsAnswered: 5, Accuracy: 40}, p.Recent[0])

	trend, err := svc.PerformanceOverTime(ctx, "u1", 7)
	require.NoError(t, err)
	require.Len(t, trend, 8)
	require.NotNil(t, trend[7].AverageScore)
	assert.Equal(t, 40.0, *trend[7].AverageScore)
	require.NotNil(t, trend[6].AverageScore)
	assert.Equal(t, 60.0, *trend[6].AverageScore)

	sugg, err := svc.Suggestions(ctx, "u1", nil)
	require.NoError(t, err)
	titles := make([]string, len(sugg))
	for i, s := range sugg {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"Focus on Fundamentals", "Study More Consistently"}, titles)
}
