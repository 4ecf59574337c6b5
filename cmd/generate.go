package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/docquiz/internal/quizgen"
	"github.com/abhisek/docquiz/internal/textseg"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate FILE...",
		Short: "Generate a quiz from each text document",
		Long: `Generate a quiz from each plain-text document.

Quizzes are written as JSON, to stdout or to <out>/<name>.quiz.json. A fixed
--seed makes generation reproducible; each file uses seed plus its position.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGenerate,
	}
	cmd.Flags().Int("count", 10, "Number of questions per quiz")
	cmd.Flags().String("difficulty", "medium", "Difficulty: easy, medium or hard")
	cmd.Flags().Uint64("seed", 0, "Random seed (random when unset)")
	cmd.Flags().String("out", "", "Directory for quiz files (default stdout)")
	cmd.Flags().Int("jobs", runtime.NumCPU(), "Documents generated in parallel")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	count, _ := cmd.Flags().GetInt("count")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	outDir, _ := cmd.Flags().GetString("out")
	jobs, _ := cmd.Flags().GetInt("jobs")
	seed, _ := cmd.Flags().GetUint64("seed")
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}

	difficulty, err := quizgen.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}
	if err := env.cfg.Quiz.ValidateRequest(count, difficulty); err != nil {
		return err
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	gen := quizgen.New(env.cfg.Quiz, env.log)
	quizzes := make([]*quizgen.Quiz, len(args))

	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for i, path := range args {
		g.Go(func() error {
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			quiz, err := gen.Generate(quizgen.NewRand(seed+uint64(i)), textseg.Clean(string(raw)), count, difficulty)
			if err != nil {
				return fmt.Errorf("generate %s: %w", path, err)
			}
			quizzes[i] = quiz
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, quiz := range quizzes {
		path := args[i]
		if quiz.InsufficientContent() {
			env.log.Warn("insufficient content for a quiz", "document", path)
		} else if quiz.Partial() {
			env.log.Warn("generated fewer questions than requested",
				"document", path, "requested", quiz.Requested, "generated", len(quiz.Questions))
		}

		data, err := quizgen.EncodeQuiz(quiz)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if outDir == "" {
			fmt.Fprintln(out, string(data))
			continue
		}
		dest := filepath.Join(outDir, documentID(path)+".quiz.json")
		if err := os.WriteFile(dest, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write quiz: %w", err)
		}
		fmt.Fprintf(out, "%s: %d questions -> %s\n", path, len(quiz.Questions), dest)
	}
	env.log.Debug("generation finished", "documents", len(args), "seed", seed)
	return nil
}
