package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/docquiz/internal/mastery"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete a user's attempts, records and study days",
		Args:  cobra.NoArgs,
		RunE:  runReset,
	}
	cmd.Flags().String("user", "", "User ID (required)")
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	out := cmd.OutOrStdout()

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Fprintf(out, "Delete all data for user %q? Type 'yes' to confirm: ", userID)
		in := bufio.NewScanner(cmd.InOrStdin())
		if !in.Scan() || strings.TrimSpace(strings.ToLower(in.Text())) != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	st, err := env.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := mastery.NewService(st.AttemptRepo(), st.ActivityRepo(), env.log).Reset(cmd.Context(), userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %d rows for %s.\n", n, userID)
	return nil
}
