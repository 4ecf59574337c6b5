package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/docquiz/internal/grading"
	"github.com/abhisek/docquiz/internal/quizgen"
	"github.com/abhisek/docquiz/internal/ui/theme"
)

// OptionLetter returns the display letter of option i: A, B, C, ...
func OptionLetter(i int) string {
	return string(rune('A' + i))
}

// ResolveChoice maps an option letter (A, b, ...) or a 1-based option
// number typed for a multiple-choice question to that option's text. Any
// other answer, or an answer that already equals an option's text, is
// returned unchanged.
func ResolveChoice(q *quizgen.Question, answer string) string {
	answer = strings.TrimSpace(answer)
	if q.Kind != quizgen.KindMultipleChoice || answer == "" {
		return answer
	}
	for _, o := range q.Options {
		if strings.EqualFold(strings.TrimSpace(o.Text), answer) {
			return answer
		}
	}

	idx := -1
	if n, err := strconv.Atoi(answer); err == nil {
		idx = n - 1
	} else if len(answer) == 1 {
		idx = int(strings.ToUpper(answer)[0]) - 'A'
	}
	if idx < 0 || idx >= len(q.Options) {
		return answer
	}
	return q.Options[idx].Text
}

// QuestionCard renders question number n of total with its options and an
// answer hint.
func QuestionCard(q *quizgen.Question, n, total int) string {
	var b strings.Builder
	header := fmt.Sprintf("Question %d of %d", n, total)
	b.WriteString(theme.Title.Render(header))
	b.WriteString("  ")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %d pt", q.Kind.DisplayName(), q.Points)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(q.Prompt))
	b.WriteString("\n")

	for i, opt := range q.Options {
		b.WriteString("\n  ")
		b.WriteString(theme.Label.Render(OptionLetter(i) + ")"))
		b.WriteString(" ")
		b.WriteString(theme.Body.Render(opt.Text))
	}
	if len(q.Options) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(answerHint(q)))
	return theme.Card.Render(b.String())
}

func answerHint(q *quizgen.Question) string {
	switch q.Kind {
	case quizgen.KindMultipleChoice:
		return "Answer with a letter, a number or the option text."
	case quizgen.KindTrueFalse:
		return "Answer True or False."
	case quizgen.KindFillBlank:
		return "Type the missing word or phrase."
	default:
		return "Type your answer."
	}
}

// VerdictLine renders the outcome of one graded answer.
func VerdictLine(v grading.Verdict) string {
	style := theme.Outcome(v.PointsEarned, v.MaxPoints)
	points := fmt.Sprintf("[%d/%d]", v.PointsEarned, v.MaxPoints)
	return style.Render(points) + " " + theme.Body.Render(v.Feedback)
}
