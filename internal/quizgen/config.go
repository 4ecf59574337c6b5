package quizgen

import (
	"fmt"
	"math"
)

// KindWeight is the probability of drawing Kind.
type KindWeight struct {
	Kind        Kind    `yaml:"kind"`
	Probability float64 `yaml:"probability"`
}

// Distribution is an ordered probability table over question kinds. Order
// matters: draws walk the table accumulating probability.
type Distribution []KindWeight

// Sum returns the total probability mass of the table.
func (d Distribution) Sum() float64 {
	var s float64
	for _, w := range d {
		s += w.Probability
	}
	return s
}

// Config controls the behavior of the Generator.
type Config struct {
	// Distributions maps each difficulty to its question-kind table.
	Distributions map[Difficulty]Distribution `yaml:"distributions"`

	// MaxConsecutiveFailures bounds how many draws in a row may fail to
	// produce a question before generation gives up and returns a
	// partial quiz.
	MaxConsecutiveFailures int `yaml:"max_consecutive_failures"`

	// MinQuestions and MaxQuestions bound the size of a generation request.
	// The Generator itself only enforces MaxQuestions; ValidateRequest
	// enforces both.
	MinQuestions int `yaml:"min_questions"`
	MaxQuestions int `yaml:"max_questions"`

	// MaxPromptLength caps prompt length; longer questions are rejected
	// by the StructuralValidator.
	MaxPromptLength int `yaml:"max_prompt_length"`

	// Validators run in order on every synthesized question. The first
	// failure rejects the question and the draw counts as failed.
	Validators []Validator `yaml:"-"`
}

// DefaultDistributions returns the standard kind tables per difficulty.
func DefaultDistributions() map[Difficulty]Distribution {
	return map[Difficulty]Distribution{
		DifficultyEasy: {
			{KindMultipleChoice, 0.4},
			{KindTrueFalse, 0.4},
			{KindFillBlank, 0.2},
		},
		DifficultyMedium: {
			{KindMultipleChoice, 0.3},
			{KindTrueFalse, 0.3},
			{KindShortAnswer, 0.2},
			{KindFillBlank, 0.2},
		},
		DifficultyHard: {
			{KindMultipleChoice, 0.2},
			{KindTrueFalse, 0.2},
			{KindShortAnswer, 0.4},
			{KindFillBlank, 0.2},
		},
	}
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Distributions:          DefaultDistributions(),
		MaxConsecutiveFailures: 10,
		MinQuestions:           5,
		MaxQuestions:           50,
		MaxPromptLength:        2000,
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
		},
	}
}

// distributionTolerance absorbs float rounding in table sums.
const distributionTolerance = 1e-9

// Validate checks that every distribution is well formed.
func (c Config) Validate() error {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		dist, ok := c.Distributions[d]
		if !ok {
			return fmt.Errorf("missing distribution for difficulty %q", d)
		}
		if err := dist.Validate(); err != nil {
			return fmt.Errorf("%s distribution: %w", d, err)
		}
	}
	if c.MaxConsecutiveFailures < 0 {
		return fmt.Errorf("max_consecutive_failures must be >= 0, got %d", c.MaxConsecutiveFailures)
	}
	if c.MinQuestions < 1 || c.MaxQuestions < c.MinQuestions {
		return fmt.Errorf("invalid question bounds %d..%d", c.MinQuestions, c.MaxQuestions)
	}
	return nil
}

// Validate checks that the table names only known kinds, has no negative
// weights, and sums to 1.
func (d Distribution) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("empty distribution")
	}
	for _, w := range d {
		if !w.Kind.Valid() {
			return fmt.Errorf("unknown kind %q", w.Kind)
		}
		if w.Probability < 0 {
			return fmt.Errorf("negative probability %v for %q", w.Probability, w.Kind)
		}
	}
	if sum := d.Sum(); math.Abs(sum-1) > distributionTolerance {
		return fmt.Errorf("probabilities sum to %v, want 1", sum)
	}
	return nil
}

// ValidateRequest checks a generation request against the configured
// bounds.
func (c Config) ValidateRequest(count int, difficulty Difficulty) error {
	if count < c.MinQuestions || count > c.MaxQuestions {
		return fmt.Errorf("question count %d out of range %d..%d", count, c.MinQuestions, c.MaxQuestions)
	}
	if _, ok := c.Distributions[difficulty]; !ok {
		return fmt.Errorf("unknown difficulty %q", difficulty)
	}
	return nil
}
