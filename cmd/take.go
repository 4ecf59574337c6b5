package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/docquiz/internal/grading"
	"github.com/abhisek/docquiz/internal/mastery"
	"github.com/abhisek/docquiz/internal/session"
	"github.com/abhisek/docquiz/internal/ui/components"
	"github.com/abhisek/docquiz/internal/ui/theme"
)

func newTakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "take QUIZ",
		Short: "Take a quiz interactively and record the attempt",
		Long: `Take a quiz interactively. Each answer is graded as soon as it is entered.
The finished attempt updates your performance record for the document and
your study streak. End input early (Ctrl-D) to finish with the questions
answered so far.`,
		Args: cobra.ExactArgs(1),
		RunE: runTake,
	}
	cmd.Flags().String("user", "", "User ID (required)")
	cmd.Flags().String("document", "", "Document ID (default: quiz file name)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runTake(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	quiz, err := loadQuiz(args[0])
	if err != nil {
		return err
	}
	if quiz.InsufficientContent() {
		return errors.New("quiz has no questions")
	}

	userID, _ := cmd.Flags().GetString("user")
	docID, _ := cmd.Flags().GetString("document")
	if docID == "" {
		docID = documentID(args[0])
	}

	st, err := env.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	svc := mastery.NewService(st.AttemptRepo(), st.ActivityRepo(), env.log)

	sess := session.New(quiz, userID, docID, time.Now(),
		session.WithGrader(grading.New(env.cfg.Grading)))
	env.log.Debug("session started", "session", sess.ID, "user", userID, "document", docID)

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		fmt.Fprintln(out, components.QuestionCard(q, i+1, sess.Len()))
		fmt.Fprint(out, theme.Label.Render("> "))
		if !in.Scan() {
			fmt.Fprintln(out)
			break
		}
		v, err := sess.Answer(i, components.ResolveChoice(q, in.Text()))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, components.VerdictLine(v))
		if !v.IsCorrect && q.Explanation != "" {
			fmt.Fprintln(out, theme.Hint.Render(q.Explanation))
		}
		fmt.Fprintln(out)
	}
	if err := in.Err(); err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	now := time.Now()
	summary := session.BuildSummary(sess, now)
	outcome, err := svc.CompleteAttempt(cmd.Context(), sess.Finish(now))
	if err != nil {
		return err
	}
	printTakeSummary(out, summary, outcome)

	suggestions, err := svc.Suggestions(cmd.Context(), userID, summary.Kinds)
	if err != nil {
		env.log.Warn("load suggestions failed", "user", userID, "error", err)
	}
	printSuggestions(out, suggestions)
	return nil
}

func printTakeSummary(out io.Writer, s *session.Summary, o mastery.Outcome) {
	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Quiz completed! Your score: %.1f%%", s.Score)))
	fmt.Fprintf(out, "%d of %d points, %d of %d questions correct (%d answered)\n",
		s.EarnedPoints, s.TotalPoints, s.Correct, s.TotalQuestions, s.Answered)

	if len(s.Kinds) > 0 {
		fmt.Fprintln(out)
		for _, ks := range s.Kinds {
			bar := components.NewProgressBar(fmt.Sprintf("%-18s", ks.Kind.DisplayName()), ks.AccuracyPercent/100, true, 50)
			fmt.Fprintln(out, bar.View())
		}
	}

	rec := o.Record
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s (average %.1f%% over %d attempts, best %.1f%%)\n",
		theme.Label.Render("Mastery:"), theme.Level(rec.Level).Render(rec.Level.DisplayName()),
		rec.AverageScore, rec.TotalAttempts, rec.BestScore)
	if c := o.LevelChange; c != nil && c.From != "" {
		style := theme.Incorrect
		if c.Promoted() {
			style = theme.Correct
		}
		fmt.Fprintln(out, style.Render(fmt.Sprintf("Level changed: %s -> %s", c.From.DisplayName(), c.To.DisplayName())))
	}

	fmt.Fprintf(out, "%s %d days (longest %d), next milestone at %d\n",
		theme.Label.Render("Streak:"), o.Streak.CurrentStreak, o.Streak.LongestStreak, o.NextMilestone)
	if o.Milestone {
		fmt.Fprintln(out, theme.Highlight.Render(fmt.Sprintf("%d-day streak reached!", o.Streak.CurrentStreak)))
	}
}
