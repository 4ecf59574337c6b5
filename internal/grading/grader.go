// Package grading scores learner answers against generated questions
// using fuzzy text similarity and tiered partial credit.
package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/docquiz/internal/quizgen"
)

// Config holds the similarity thresholds and credit fractions.
type Config struct {
	// ExcellentThreshold and CorrectThreshold award full credit.
	ExcellentThreshold float64 `yaml:"excellent_threshold"`
	CorrectThreshold   float64 `yaml:"correct_threshold"`

	// PartialThreshold is the lowest similarity that earns tiered credit.
	PartialThreshold float64 `yaml:"partial_threshold"`

	// ShortAnswerPartial is the fraction awarded to short answers in the
	// partial tier; FillBlankPartial the same for fill-in answers.
	ShortAnswerPartial float64 `yaml:"short_answer_partial"`
	FillBlankPartial   float64 `yaml:"fill_blank_partial"`

	// KeywordThreshold is the keyword score at which a low-similarity
	// short answer still earns KeywordCredit.
	KeywordThreshold float64 `yaml:"keyword_threshold"`
	KeywordCredit    float64 `yaml:"keyword_credit"`
	KeywordMinLength int     `yaml:"keyword_min_length"`

	// OptionMatchThreshold is the similarity above which free text is
	// taken to select a multiple-choice option.
	OptionMatchThreshold float64 `yaml:"option_match_threshold"`

	// TypoSimilarity is the Levenshtein similarity at which two words are
	// treated as a typo pair in WordOverlap. Zero disables typo pairing.
	TypoSimilarity float64 `yaml:"typo_similarity"`
}

// DefaultConfig returns the standard grading thresholds.
func DefaultConfig() Config {
	return Config{
		ExcellentThreshold:   0.95,
		CorrectThreshold:     0.8,
		PartialThreshold:     0.6,
		ShortAnswerPartial:   0.7,
		FillBlankPartial:     0.8,
		KeywordThreshold:     0.5,
		KeywordCredit:        0.5,
		KeywordMinLength:     3,
		OptionMatchThreshold: 0.9,
		TypoSimilarity:       0.8,
	}
}

// Validate checks that thresholds are ordered and fractions are in range.
func (c Config) Validate() error {
	if !(0 <= c.PartialThreshold && c.PartialThreshold <= c.CorrectThreshold &&
		c.CorrectThreshold <= c.ExcellentThreshold && c.ExcellentThreshold <= 1) {
		return fmt.Errorf("thresholds must satisfy 0 <= partial <= correct <= excellent <= 1")
	}
	for name, f := range map[string]float64{
		"short_answer_partial":   c.ShortAnswerPartial,
		"fill_blank_partial":     c.FillBlankPartial,
		"keyword_threshold":      c.KeywordThreshold,
		"keyword_credit":         c.KeywordCredit,
		"option_match_threshold": c.OptionMatchThreshold,
		"typo_similarity":        c.TypoSimilarity,
	} {
		if f < 0 || f > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, f)
		}
	}
	return nil
}

// Verdict is the outcome of grading one answer.
type Verdict struct {
	IsCorrect    bool           `json:"is_correct"`
	PointsEarned int            `json:"points_earned"`
	MaxPoints    int            `json:"max_points"`
	Similarity   *float64       `json:"similarity,omitempty"`
	Feedback     string         `json:"feedback"`
	Detail       map[string]any `json:"detail,omitempty"`
}

// Grader grades answers. It is stateless and safe for concurrent use.
type Grader struct {
	cfg Config
}

// New returns a Grader using cfg.
func New(cfg Config) *Grader {
	return &Grader{cfg: cfg}
}

// Similarity scores two answers with the grader's typo setting.
func (g *Grader) Similarity(a, b string) float64 {
	return Similarity(a, b, g.cfg.TypoSimilarity)
}

// Grade scores answer against q. Invalid input never errors; it yields
// a zero-credit verdict whose feedback names the problem.
func (g *Grader) Grade(q *quizgen.Question, answer string) Verdict {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Verdict{MaxPoints: q.Points, Feedback: "No answer provided"}
	}

	switch q.Kind {
	case quizgen.KindMultipleChoice:
		return g.gradeMultipleChoice(q, answer)
	case quizgen.KindTrueFalse:
		return g.gradeTrueFalse(q, answer)
	case quizgen.KindShortAnswer:
		return g.gradeShortAnswer(q, answer)
	case quizgen.KindFillBlank:
		return g.gradeFillBlank(q, answer)
	}
	return Verdict{MaxPoints: q.Points, Feedback: "Unknown question type"}
}

// partial returns floor(points × fraction).
func partial(points int, fraction float64) int {
	return int(float64(points) * fraction)
}

// selectOption resolves free text to an option index: the closest option
// above OptionMatchThreshold, then a case-insensitive exact match. It
// returns -1 when nothing matches. Option letters and numbers are a
// presentation concern and are resolved by the caller.
func (g *Grader) selectOption(q *quizgen.Question, answer string) int {
	best, bestSim := -1, g.cfg.OptionMatchThreshold
	for i, o := range q.Options {
		if s := g.Similarity(o.Text, answer); s > bestSim {
			best, bestSim = i, s
		}
	}
	if best >= 0 {
		return best
	}
	for i, o := range q.Options {
		if strings.EqualFold(strings.TrimSpace(o.Text), answer) {
			return i
		}
	}
	return -1
}

func (g *Grader) gradeMultipleChoice(q *quizgen.Question, answer string) Verdict {
	v := Verdict{MaxPoints: q.Points}
	idx := g.selectOption(q, answer)
	if idx < 0 {
		v.Feedback = "Invalid option selected"
		return v
	}

	selected := q.Options[idx]
	v.Detail = map[string]any{"selected_option": selected.Text}
	if selected.IsCorrect {
		v.IsCorrect = true
		v.PointsEarned = q.Points
		v.Feedback = "Correct answer!"
		return v
	}

	correct, ok := q.CorrectOption()
	if ok {
		v.Feedback = "Incorrect. The correct answer is: " + correct.Text
		v.Detail["correct_option"] = correct.Text
	} else {
		v.Feedback = "Incorrect. The correct answer is: Not found"
	}
	return v
}

var (
	trueWords  = map[string]bool{"true": true, "t": true, "yes": true, "y": true, "1": true, "correct": true}
	falseWords = map[string]bool{"false": true, "f": true, "no": true, "n": true, "0": true, "incorrect": true}
)

// ParseTrueFalse maps an answer to "true" or "false" via the synonym
// tables. ok is false for unrecognized input.
func ParseTrueFalse(answer string) (value string, ok bool) {
	a := strings.ToLower(strings.TrimSpace(answer))
	switch {
	case trueWords[a]:
		return "true", true
	case falseWords[a]:
		return "false", true
	}
	return "", false
}

func (g *Grader) gradeTrueFalse(q *quizgen.Question, answer string) Verdict {
	v := Verdict{MaxPoints: q.Points}
	got, ok := ParseTrueFalse(answer)
	if !ok {
		v.Feedback = "Please answer with True or False"
		return v
	}
	if got == strings.ToLower(strings.TrimSpace(q.CorrectAnswer)) {
		v.IsCorrect = true
		v.PointsEarned = q.Points
		v.Feedback = "Correct!"
		return v
	}
	v.Feedback = "Incorrect. The correct answer is: " + q.CorrectAnswer
	v.Detail = map[string]any{"user_answer": answer, "correct_answer": q.CorrectAnswer}
	return v
}

func (g *Grader) gradeShortAnswer(q *quizgen.Question, answer string) Verdict {
	expected := strings.TrimSpace(q.CorrectAnswer)
	sim := g.Similarity(expected, answer)
	v := Verdict{MaxPoints: q.Points, Similarity: &sim}

	switch {
	case sim >= g.cfg.ExcellentThreshold:
		v.IsCorrect, v.PointsEarned = true, q.Points
		v.Feedback = "Excellent answer!"
	case sim >= g.cfg.CorrectThreshold:
		v.IsCorrect, v.PointsEarned = true, q.Points
		v.Feedback = "Correct! Your answer matches the expected response."
	case sim >= g.cfg.PartialThreshold:
		v.PointsEarned = partial(q.Points, g.cfg.ShortAnswerPartial)
		v.Feedback = fmt.Sprintf("Partially correct. You earned %d out of %d points.", v.PointsEarned, q.Points)
		v.Detail = map[string]any{"correct_answer": expected}
	default:
		kw := KeywordScore(expected, answer, g.cfg.KeywordMinLength)
		v.Detail = map[string]any{"correct_answer": expected, "keyword_score": kw}
		if kw >= g.cfg.KeywordThreshold {
			v.PointsEarned = partial(q.Points, g.cfg.KeywordCredit)
			v.Feedback = fmt.Sprintf("Some key concepts identified. You earned %d out of %d points.", v.PointsEarned, q.Points)
		} else {
			v.Feedback = "Incorrect answer. Please review the material."
		}
	}
	return v
}

func (g *Grader) gradeFillBlank(q *quizgen.Question, answer string) Verdict {
	expected := strings.TrimSpace(q.CorrectAnswer)
	sim := g.Similarity(expected, answer)
	v := Verdict{MaxPoints: q.Points, Similarity: &sim}

	switch {
	case sim >= g.cfg.CorrectThreshold:
		v.IsCorrect, v.PointsEarned = true, q.Points
		v.Feedback = "Correct!"
	case sim >= g.cfg.PartialThreshold:
		v.PointsEarned = partial(q.Points, g.cfg.FillBlankPartial)
		v.Feedback = fmt.Sprintf("Very close! You earned %d out of %d points.", v.PointsEarned, q.Points)
		v.Detail = map[string]any{"correct_answer": expected}
	default:
		v.Feedback = "Incorrect. The correct answer is: " + expected
		v.Detail = map[string]any{"correct_answer": expected}
	}
	return v
}

// Feedback builds the full review record for an answered question.
func Feedback(q *quizgen.Question, answer string, v Verdict) map[string]any {
	fb := map[string]any{
		"question_type":  string(q.Kind),
		"user_answer":    answer,
		"correct_answer": q.CorrectAnswer,
		"is_correct":     v.IsCorrect,
		"points_earned":  v.PointsEarned,
		"max_points":     q.Points,
		"explanation":    q.Explanation,
		"feedback":       v.Feedback,
	}
	if v.Similarity != nil {
		fb["similarity"] = *v.Similarity
	}
	if q.Kind == quizgen.KindMultipleChoice {
		if correct, ok := q.CorrectOption(); ok {
			fb["correct_option"] = correct.Text
		} else {
			fb["correct_option"] = nil
		}
		fb["all_options"] = q.OptionTexts()
	}
	return fb
}
