package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validator checks a synthesized question before it is accepted.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs,
	// e.g. "structural", "options".
	Name() string

	// Validate returns nil if q passes the check.
	Validate(q *Question, cfg Config) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether another draw is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// runValidators runs the chain in order and returns the first failure.
func runValidators(q *Question, cfg Config) *ValidationError {
	for _, v := range cfg.Validators {
		if verr := v.Validate(q, cfg); verr != nil {
			return verr
		}
	}
	return nil
}

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, cfg Config) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	if !q.Kind.Valid() {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown kind %q", q.Kind)}
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fail("prompt is empty")
	}
	if cfg.MaxPromptLength > 0 && utf8.RuneCountInString(q.Prompt) > cfg.MaxPromptLength {
		return fail(fmt.Sprintf("prompt exceeds %d characters", cfg.MaxPromptLength))
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fail("correct_answer is empty")
	}
	if q.Points <= 0 {
		return fail("points must be positive")
	}
	switch q.Kind {
	case KindTrueFalse:
		if q.CorrectAnswer != "True" && q.CorrectAnswer != "False" {
			return fail(`true_false answer must be "True" or "False"`)
		}
	case KindFillBlank:
		if !strings.Contains(q.Prompt, Blank) {
			return fail("fill_blank prompt has no blank")
		}
	}
	return nil
}

// OptionsValidator checks the option list: multiple choice needs exactly
// 4 distinct options with exactly one correct, matching the answer;
// every other kind carries none.
type OptionsValidator struct{}

// MultipleChoiceOptions is the number of options a multiple-choice
// question carries.
const MultipleChoiceOptions = 4

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Question, _ Config) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	if q.Kind != KindMultipleChoice {
		if len(q.Options) > 0 {
			return fail(fmt.Sprintf("%s question must not have options", q.Kind))
		}
		return nil
	}
	if len(q.Options) != MultipleChoiceOptions {
		return fail(fmt.Sprintf("multiple_choice needs %d options, got %d", MultipleChoiceOptions, len(q.Options)))
	}
	seen := make(map[string]bool, len(q.Options))
	correct := 0
	for _, o := range q.Options {
		key := strings.ToLower(strings.TrimSpace(o.Text))
		if key == "" {
			return fail("option text is empty")
		}
		if seen[key] {
			return fail(fmt.Sprintf("duplicate option %q", o.Text))
		}
		seen[key] = true
		if o.IsCorrect {
			correct++
			if o.Text != q.CorrectAnswer {
				return fail(fmt.Sprintf("correct option %q does not match answer %q", o.Text, q.CorrectAnswer))
			}
		}
	}
	if correct != 1 {
		return fail(fmt.Sprintf("multiple_choice needs exactly one correct option, got %d", correct))
	}
	return nil
}
