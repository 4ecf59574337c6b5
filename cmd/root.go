package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docquiz",
		Short: "Quizzes from your study documents",
		Long: `docquiz turns plain-text study documents into quizzes, grades free-text
answers with fuzzy matching, and tracks mastery and study streaks per document.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DOCQUIZ_DB env var)")
	cmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides DOCQUIZ_CONFIG env var)")
	cmd.PersistentFlags().String("log", "", "Log mode: dev, debug or prod (overrides DOCQUIZ_LOG env var)")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newGradeCmd())
	cmd.AddCommand(newTakeCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newResetCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func Execute() error {
	return rootCmd.Execute()
}
