package mastery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/docquiz/internal/quizgen"
)

func summary(score float64, minutes int, at time.Time) AttemptSummary {
	return AttemptSummary{
		UserID: "u1", DocumentID: "d1", Score: score,
		EarnedPoints: int(score / 10), TotalPoints: 10,
		QuestionsAnswered: 5, CorrectAnswers: 2,
		TimeTakenMinutes: minutes, CompletedAt: at,
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		avg  float64
		want Level
	}{
		{0, LevelBeginner},
		{59.9, LevelBeginner},
		{60, LevelIntermediate},
		{74.99, LevelIntermediate},
		{75, LevelAdvanced},
		{89.9, LevelAdvanced},
		{90, LevelExpert},
		{100, LevelExpert},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.avg); got != tt.want {
			t.Errorf("LevelFor(%v) = %s, want %s", tt.avg, got, tt.want)
		}
	}
}

func TestLevelChange_Promoted(t *testing.T) {
	assert.True(t, LevelChange{From: "", To: LevelBeginner}.Promoted())
	assert.True(t, LevelChange{From: LevelIntermediate, To: LevelExpert}.Promoted())
	assert.False(t, LevelChange{From: LevelExpert, To: LevelAdvanced}.Promoted())
	assert.Equal(t, "Advanced", LevelAdvanced.DisplayName())
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0.0, Score(3, 0))
	assert.Equal(t, 50.0, Score(4, 8))
	assert.Equal(t, 100.0, Score(8, 8))
}

func TestElapsedMinutes(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, ElapsedMinutes(start, start.Add(59*time.Second)))
	assert.Equal(t, 2, ElapsedMinutes(start, start.Add(2*time.Minute+59*time.Second)))
	assert.Equal(t, 0, ElapsedMinutes(start, start.Add(-time.Hour)))
}

func TestRecordAttempt_Sequence(t *testing.T) {
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	rec := RecordAttempt(nil, summary(80, 5, at))
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, "d1", rec.DocumentID)
	assert.Equal(t, 1, rec.TotalAttempts)
	assert.Equal(t, 80.0, rec.BestScore)
	assert.Equal(t, 80.0, rec.AverageScore)
	assert.Equal(t, 5, rec.TotalTimeMinutes)
	assert.Equal(t, LevelAdvanced, rec.Level)
	assert.Equal(t, at, rec.LastAttemptDate)
	assert.Equal(t, int64(1), rec.Version)

	rec = RecordAttempt(&rec, summary(100, 3, at.Add(time.Hour)))
	rec = RecordAttempt(&rec, summary(90, 2, at.Add(2*time.Hour)))
	assert.Equal(t, 3, rec.TotalAttempts)
	assert.Equal(t, 100.0, rec.BestScore)
	assert.InDelta(t, 90.0, rec.AverageScore, 1e-9)
	assert.Equal(t, 10, rec.TotalTimeMinutes)
	assert.Equal(t, LevelExpert, rec.Level)
	assert.Equal(t, []float64{80, 100, 90}, rec.Scores)
	assert.Equal(t, at.Add(2*time.Hour), rec.LastAttemptDate)
	assert.Equal(t, int64(3), rec.Version)
}

func TestRecordAttempt_DoesNotModifyExisting(t *testing.T) {
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	first := RecordAttempt(nil, summary(40, 1, at))
	second := RecordAttempt(&first, summary(60, 1, at))

	assert.Equal(t, []float64{40}, first.Scores)
	assert.Equal(t, 1, first.TotalAttempts)
	assert.Equal(t, []float64{40, 60}, second.Scores)
	assert.Equal(t, 50.0, second.AverageScore)
	assert.Equal(t, LevelBeginner, second.Level)
}

func TestRecordAttempt_AverageIsMeanOfAllScores(t *testing.T) {
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	scores := []float64{12.5, 99, 0, 73.25, 61, 88}

	var rec *PerformanceRecord
	sum := 0.0
	for i, sc := range scores {
		next := RecordAttempt(rec, summary(sc, 1, at))
		rec = &next
		sum += sc
		require.InDelta(t, sum/float64(i+1), rec.AverageScore, 1e-9)
		require.LessOrEqual(t, rec.AverageScore, rec.BestScore)
	}
	assert.Equal(t, 99.0, rec.BestScore)
}

func TestAttemptSummary_Validate(t *testing.T) {
	at := time.Now()
	ok := summary(50, 1, at)
	require.NoError(t, ok.Validate())

	tests := []struct {
		name   string
		mutate func(*AttemptSummary)
	}{
		{"no user", func(a *AttemptSummary) { a.UserID = "" }},
		{"no document", func(a *AttemptSummary) { a.DocumentID = "" }},
		{"earned above total", func(a *AttemptSummary) { a.EarnedPoints = 11 }},
		{"correct above answered", func(a *AttemptSummary) { a.CorrectAnswers = 6 }},
		{"negative time", func(a *AttemptSummary) { a.TimeTakenMinutes = -1 }},
		{"score above 100", func(a *AttemptSummary) { a.Score = 101 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ok
			tt.mutate(&a)
			assert.Error(t, a.Validate())
		})
	}
}

func TestBreakdown(t *testing.T) {
	results := []QuestionResult{
		{Kind: quizgen.KindMultipleChoice, Correct: true, PointsEarned: 2, MaxPoints: 2},
		{Kind: quizgen.KindMultipleChoice, Correct: false, PointsEarned: 0, MaxPoints: 2},
		{Kind: quizgen.KindTrueFalse, Correct: true, PointsEarned: 1, MaxPoints: 1},
		{Kind: quizgen.KindShortAnswer, Correct: false, PointsEarned: 2, MaxPoints: 3},
		{Kind: quizgen.KindShortAnswer, Correct: false, PointsEarned: 0, MaxPoints: 3},
		{Kind: quizgen.KindShortAnswer, Correct: true, PointsEarned: 3, MaxPoints: 3},
	}

	got := Breakdown(results)
	require.Len(t, got, 3)

	assert.Equal(t, quizgen.KindTrueFalse, got[0].Kind)
	assert.Equal(t, 100.0, got[0].AccuracyPercent)

	assert.Equal(t, quizgen.KindMultipleChoice, got[1].Kind)
	assert.Equal(t, 2, got[1].Total)
	assert.Equal(t, 50.0, got[1].AccuracyPercent)
	assert.Equal(t, 50.0, got[1].ScorePercent)

	assert.Equal(t, quizgen.KindShortAnswer, got[2].Kind)
	assert.Equal(t, 33.3, got[2].AccuracyPercent)
	assert.Equal(t, 55.6, got[2].ScorePercent)
	assert.Equal(t, 5, got[2].PointsEarned)
	assert.Equal(t, 9, got[2].MaxPoints)

	weak, ok := Weakest(got)
	assert.True(t, ok)
	assert.Equal(t, quizgen.KindShortAnswer, weak.Kind)
}

func TestBreakdown_Empty(t *testing.T) {
	assert.Empty(t, Breakdown(nil))
	_, ok := Weakest(nil)
	assert.False(t, ok)

	_, ok = Weakest([]KindStats{{Kind: quizgen.KindTrueFalse, AccuracyPercent: 70}})
	assert.False(t, ok)
}
