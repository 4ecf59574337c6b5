package quizgen

import "fmt"

// Kind identifies how a question is answered. The set is closed: every
// Kind in AllKinds has exactly one synthesizer and one grading rule.
type Kind string

const (
	// KindMultipleChoice asks the learner to pick one of 4 options.
	KindMultipleChoice Kind = "multiple_choice"

	// KindTrueFalse asks whether a (possibly negated) statement holds.
	KindTrueFalse Kind = "true_false"

	// KindShortAnswer asks for a key term in free text.
	KindShortAnswer Kind = "short_answer"

	// KindFillBlank asks for the key term blanked out of a sentence.
	KindFillBlank Kind = "fill_blank"
)

// AllKinds returns every question kind.
func AllKinds() []Kind {
	return []Kind{KindMultipleChoice, KindTrueFalse, KindShortAnswer, KindFillBlank}
}

// Valid reports whether k is one of AllKinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindShortAnswer, KindFillBlank:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple Choice"
	case KindTrueFalse:
		return "True/False"
	case KindShortAnswer:
		return "Short Answer"
	case KindFillBlank:
		return "Fill in the Blank"
	default:
		return string(k)
	}
}

// Points returns the full-credit value of a question of this kind.
func (k Kind) Points() int {
	switch k {
	case KindMultipleChoice, KindFillBlank:
		return 2
	case KindTrueFalse:
		return 1
	case KindShortAnswer:
		return 3
	default:
		return 1
	}
}

// Difficulty selects the question-kind distribution for a quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("invalid difficulty %q: must be easy, medium, or hard", s)
}

// Option is one answer choice of a multiple-choice question.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a synthesized quiz question. It is not modified after
// creation; the persistence layer takes ownership.
type Question struct {
	// Kind selects the answer format and grading rule.
	Kind Kind `json:"kind"`

	// Prompt is the text shown to the learner.
	Prompt string `json:"prompt"`

	// CorrectAnswer is the canonical answer. For multiple choice it equals
	// the text of the correct option; for true/false it is "True" or "False".
	CorrectAnswer string `json:"correct_answer"`

	// Options is populated only for KindMultipleChoice: exactly 4 entries,
	// exactly one with IsCorrect set.
	Options []Option `json:"options,omitempty"`

	// Explanation is shown after the learner answers.
	Explanation string `json:"explanation"`

	// Points is the full-credit value, always > 0.
	Points int `json:"points"`

	// Source is the document sentence the question was built from.
	Source string `json:"source,omitempty"`
}

// CorrectOption returns the option flagged correct, if any.
func (q *Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o, true
		}
	}
	return Option{}, false
}

// OptionTexts returns the option texts in display order.
func (q *Question) OptionTexts() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Text
	}
	return out
}

// Quiz is the ordered result of one generation request. It may hold fewer
// questions than requested when the source text runs dry.
type Quiz struct {
	Difficulty Difficulty `json:"difficulty"`
	Requested  int        `json:"requested"`
	Questions  []Question `json:"questions"`
}

// Partial reports whether fewer questions than requested were produced.
func (q *Quiz) Partial() bool {
	return len(q.Questions) < q.Requested
}

// InsufficientContent reports whether the source yielded no questions.
func (q *Quiz) InsufficientContent() bool {
	return len(q.Questions) == 0
}

// TotalPoints sums the full-credit value of every question.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}
