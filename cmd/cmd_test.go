package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/docquiz/internal/quizgen"
)

const biologyNotes = `Cells are the basic structural and functional units of every known living organism on Earth, as Robert Hooke first observed in 1665 with an early microscope.
Mitochondria generate most of the chemical energy needed to power the biochemical reactions of the cell, storing it in a molecule called adenosine triphosphate.
Photosynthesis in Plants converts light energy from the Sun into chemical energy that can later be released to fuel the activities of the organism.

Gregor Mendel studied inheritance in pea plants and described dominant and recessive traits long before the structure of DNA was discovered by Watson and Crick.
Ribosomes translate messenger RNA into chains of amino acids, which then fold into the proteins that carry out nearly every function inside a living cell.`

// testEnv isolates config, data and database paths in a temp dir.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("DOCQUIZ_CONFIG", "")
	t.Setenv("DOCQUIZ_DB", filepath.Join(dir, "test.db"))
	t.Setenv("DOCQUIZ_LOG", "prod")
	return dir
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func generateQuiz(t *testing.T, dir string, count int) (string, *quizgen.Quiz) {
	t.Helper()
	doc := writeDoc(t, dir, "biology.txt", biologyNotes)
	outDir := filepath.Join(dir, "quizzes")
	_, err := run(t, "", "generate", doc, "--count", strconv.Itoa(count), "--seed", "7", "--out", outDir)
	require.NoError(t, err)

	path := filepath.Join(outDir, "biology.quiz.json")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	quiz, err := quizgen.DecodeQuiz(raw)
	require.NoError(t, err)
	return path, quiz
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "docquiz (devel)\n", out)
}

func TestGenerate_Stdout(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "notes.txt", biologyNotes)

	out, err := run(t, "", "generate", doc, "--count", "5", "--difficulty", "hard", "--seed", "3")
	require.NoError(t, err)
	quiz, err := quizgen.DecodeQuiz([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, quizgen.DifficultyHard, quiz.Difficulty)
	assert.Equal(t, 5, quiz.Requested)
	assert.Len(t, quiz.Questions, 5)

	again, err := run(t, "", "generate", doc, "--count", "5", "--difficulty", "hard", "--seed", "3")
	require.NoError(t, err)
	assert.Equal(t, out, again, "same seed, same quiz")
}

func TestGenerate_ManyFiles(t *testing.T) {
	dir := testEnv(t)
	a := writeDoc(t, dir, "a.txt", biologyNotes)
	b := writeDoc(t, dir, "b.md", biologyNotes)
	empty := writeDoc(t, dir, "empty.txt", "Too short.")
	outDir := filepath.Join(dir, "out")

	out, err := run(t, "", "generate", a, b, empty, "--count", "5", "--seed", "1", "--out", outDir, "--jobs", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "a.txt: 5 questions")
	assert.Contains(t, out, "empty.txt: 0 questions")

	for _, name := range []string{"a", "b", "empty"} {
		raw, err := os.ReadFile(filepath.Join(outDir, name+".quiz.json"))
		require.NoError(t, err, name)
		_, err = quizgen.DecodeQuiz(raw)
		require.NoError(t, err, name)
	}
}

func TestGenerate_InvalidRequest(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "notes.txt", biologyNotes)

	_, err := run(t, "", "generate", doc, "--count", "4")
	assert.Error(t, err, "below the minimum")
	_, err = run(t, "", "generate", doc, "--count", "51")
	assert.Error(t, err, "above the maximum")
	_, err = run(t, "", "generate", doc, "--difficulty", "extreme")
	assert.Error(t, err)
	_, err = run(t, "", "generate", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
	_, err = run(t, "", "generate")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "notes.txt", biologyNotes)

	out, err := run(t, "", "inspect", doc, "--json")
	require.NoError(t, err)
	var report inspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "notes", report.Document)
	assert.Equal(t, 5, report.Stats.UsableSentences)
	assert.Equal(t, 2, report.Stats.ParagraphCount)
	assert.Contains(t, report.KeyTerms, "Mendel")
	assert.NotEmpty(t, report.Summary)

	out, err = run(t, "", "inspect", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "Reading time:")
	assert.Contains(t, out, "Key terms:")
}

func TestGrade(t *testing.T) {
	dir := testEnv(t)
	path, quiz := generateQuiz(t, dir, 5)
	q := quiz.Questions[0]

	out, err := run(t, "", "grade", path, "--question", "1", "--answer", q.CorrectAnswer)
	require.NoError(t, err)
	var res gradeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.Question)
	assert.True(t, res.Verdict.IsCorrect)
	assert.Equal(t, q.Points, res.Verdict.PointsEarned)
	assert.Equal(t, string(q.Kind), res.Feedback["question_type"])

	out, err = run(t, "", "grade", path, "--question", "1", "--answer", "")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "No answer provided", res.Verdict.Feedback)

	_, err = run(t, "", "grade", path, "--question", "6", "--answer", "x")
	assert.Error(t, err)
	_, err = run(t, "", "grade", path, "--answer", "x")
	assert.Error(t, err, "--question is required")
}

func TestGrade_RejectsInvalidQuiz(t *testing.T) {
	dir := testEnv(t)
	bad := writeDoc(t, dir, "bad.quiz.json", `{"difficulty":"medium","questions":[{"kind":"essay"}]}`)
	_, err := run(t, "", "grade", bad, "--question", "1", "--answer", "x")
	assert.Error(t, err)
}

func TestTakeStatsReset(t *testing.T) {
	dir := testEnv(t)
	path, quiz := generateQuiz(t, dir, 6)

	var answers strings.Builder
	for _, q := range quiz.Questions {
		answers.WriteString(q.CorrectAnswer + "\n")
	}
	out, err := run(t, answers.String(), "take", path, "--user", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 1 of 6")
	assert.Contains(t, out, "Your score: 100.0%")
	assert.Contains(t, out, "Expert")
	assert.Contains(t, out, "Streak:")

	// Finish early: only the first question is answered.
	out, err = run(t, "nonsense answer\n", "take", path, "--user", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 answered)")

	out, err = run(t, "", "stats", "--user", "ada", "--json")
	require.NoError(t, err)
	var report statsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Records, 1)
	rec := report.Records[0]
	assert.Equal(t, "biology", rec.DocumentID)
	assert.Equal(t, 2, rec.TotalAttempts)
	assert.Equal(t, 100.0, rec.BestScore)
	assert.Len(t, rec.Scores, 2)
	assert.Equal(t, 1, report.Streak.CurrentStreak)
	assert.Equal(t, 3, report.NextMilestone)
	assert.Len(t, report.Recent, 2)
	assert.Equal(t, 1, report.Patterns.TotalStudyDays)
	assert.Equal(t, 3.3, report.Patterns.FrequencyPercent)
	require.Len(t, report.Patterns.Recent, 1)
	assert.Equal(t, len(quiz.Questions)*2, report.Patterns.Recent[0].QuestionsAnswered)
	require.Len(t, report.Trend, 31)
	assert.Equal(t, 2, report.Trend[30].Attempts)
	require.NotEmpty(t, report.Suggestions)
	assert.Equal(t, "habit", report.Suggestions[len(report.Suggestions)-1].Type)

	out, err = run(t, "", "stats", "--user", "ada", "--json", "--days", "6")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Trend, 7)

	out, err = run(t, "", "stats", "--user", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "biology")
	assert.Contains(t, out, "Recent attempts:")
	assert.Contains(t, out, "Habits:")
	assert.Contains(t, out, "Daily averages")
	assert.Contains(t, out, "Study More Consistently")

	out, err = run(t, "no\n", "reset", "--user", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = run(t, "", "reset", "--user", "ada", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 4 rows")

	out, err = run(t, "", "stats", "--user", "ada", "--json")
	require.NoError(t, err)
	var after statsReport
	require.NoError(t, json.Unmarshal([]byte(out), &after))
	assert.Empty(t, after.Records)
	assert.Zero(t, after.Streak.CurrentStreak)
	assert.Zero(t, after.Patterns.TotalStudyDays)
	assert.Empty(t, after.Patterns.BestDay)
}

const letterQuiz = `{
  "difficulty": "easy",
  "requested": 2,
  "questions": [
    {
      "kind": "multiple_choice",
      "prompt": "What word or phrase best completes this statement?\n\nCells store energy in a molecule called ______.",
      "correct_answer": "ATP",
      "options": [
        {"text": "ATPs", "is_correct": false},
        {"text": "ATP", "is_correct": true},
        {"text": "Not ATP", "is_correct": false},
        {"text": "None of the above", "is_correct": false}
      ],
      "explanation": "The correct answer is 'ATP' based on the context in the document.",
      "points": 2
    },
    {
      "kind": "multiple_choice",
      "prompt": "What word or phrase best completes this statement?\n\nRobert Hooke observed cells in ______.",
      "correct_answer": "1665",
      "options": [
        {"text": "1666", "is_correct": false},
        {"text": "1664", "is_correct": false},
        {"text": "1665", "is_correct": true},
        {"text": "None of the above", "is_correct": false}
      ],
      "explanation": "The correct answer is '1665' based on the context in the document.",
      "points": 2
    }
  ]
}`

func TestTake_AnswersByOptionLetter(t *testing.T) {
	dir := testEnv(t)
	path := writeDoc(t, dir, "cells.quiz.json", letterQuiz)

	out, err := run(t, "B\nc\n", "take", path, "--user", "cy")
	require.NoError(t, err)
	assert.Contains(t, out, "Your score: 100.0%")
	assert.NotContains(t, out, "Invalid option selected")

	out, err = run(t, "2\nNot an option\n", "take", path, "--user", "cy")
	require.NoError(t, err)
	assert.Contains(t, out, "Your score: 50.0%")
	assert.Contains(t, out, "Invalid option selected")

	out, err = run(t, "", "stats", "--user", "cy", "--json")
	require.NoError(t, err)
	var report statsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Records, 1)
	assert.Equal(t, "cells", report.Records[0].DocumentID)
	assert.Equal(t, []float64{100, 50}, report.Records[0].Scores)
}

func TestTake_CustomDocumentAndDBFlag(t *testing.T) {
	dir := testEnv(t)
	path, _ := generateQuiz(t, dir, 5)
	db := filepath.Join(dir, "nested", "other.db")

	_, err := run(t, "", "take", path, "--user", "bo", "--document", "chapter-1", "--db", db)
	require.NoError(t, err)
	_, err = os.Stat(db)
	require.NoError(t, err, "--db creates the database")

	out, err := run(t, "", "stats", "--user", "bo", "--json", "--db", db)
	require.NoError(t, err)
	var report statsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Records, 1)
	assert.Equal(t, "chapter-1", report.Records[0].DocumentID)
	assert.Zero(t, report.Records[0].BestScore)
}

func TestConfigFlag(t *testing.T) {
	dir := testEnv(t)
	doc := writeDoc(t, dir, "notes.txt", biologyNotes)
	cfg := writeDoc(t, dir, "docquiz.yaml", "quiz:\n  min_questions: 1\n")

	_, err := run(t, "", "generate", doc, "--count", "2", "--seed", "1", "--config", cfg)
	assert.NoError(t, err)

	bad := writeDoc(t, dir, "bad.yaml", "nope: true\n")
	_, err = run(t, "", "generate", doc, "--config", bad)
	assert.Error(t, err)
}

func TestDocumentID(t *testing.T) {
	tests := map[string]string{
		"notes.txt":                "notes",
		"/a/b/notes.quiz.json":     "notes",
		"chapter-1":                "chapter-1",
		".hidden":                  ".hidden",
		filepath.Join("x", "y.md"): "y",
	}
	for in, want := range tests {
		assert.Equal(t, want, documentID(in), in)
	}
}
