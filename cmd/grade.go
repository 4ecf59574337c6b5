package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/docquiz/internal/grading"
)

type gradeResult struct {
	Question int             `json:"question"`
	Verdict  grading.Verdict `json:"verdict"`
	Feedback map[string]any  `json:"feedback"`
}

func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade QUIZ",
		Short: "Grade one answer to a quiz question",
		Args:  cobra.ExactArgs(1),
		RunE:  runGrade,
	}
	cmd.Flags().Int("question", 0, "Question number, starting at 1 (required)")
	cmd.Flags().String("answer", "", "The answer to grade")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}

func runGrade(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	quiz, err := loadQuiz(args[0])
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("question")
	answer, _ := cmd.Flags().GetString("answer")
	if n < 1 || n > len(quiz.Questions) {
		return fmt.Errorf("question %d out of range 1..%d", n, len(quiz.Questions))
	}

	q := &quiz.Questions[n-1]
	v := grading.New(env.cfg.Grading).Grade(q, answer)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(gradeResult{
		Question: n,
		Verdict:  v,
		Feedback: grading.Feedback(q, answer, v),
	})
}
