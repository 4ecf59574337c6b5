package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/docquiz/internal/mastery"
	"github.com/abhisek/docquiz/internal/streak"
	"github.com/abhisek/docquiz/internal/ui/components"
	"github.com/abhisek/docquiz/internal/ui/theme"
)

const recentAttemptsShown = 5

type statsReport struct {
	UserID        string                      `json:"user_id"`
	Records       []mastery.PerformanceRecord `json:"records"`
	Streak        streak.State                `json:"streak"`
	NextMilestone int                         `json:"next_milestone"`
	Recent        []recentAttempt             `json:"recent_attempts"`
	Patterns      mastery.Patterns            `json:"study_patterns"`
	Trend         []mastery.DailyScore        `json:"performance_over_time"`
	Suggestions   []mastery.Suggestion        `json:"suggestions"`
}

type recentAttempt struct {
	ID               string  `json:"id"`
	DocumentID       string  `json:"document_id"`
	Score            float64 `json:"score"`
	TimeTakenMinutes int     `json:"time_taken_minutes"`
	CompletedAt      string  `json:"completed_at"`
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show performance records and study streak",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	cmd.Flags().String("user", "", "User ID (required)")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	cmd.Flags().Int("days", 30, "Days of daily average scores to report")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
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

	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	svc := mastery.NewService(st.AttemptRepo(), st.ActivityRepo(), env.log)

	report := statsReport{UserID: userID}
	if report.Records, err = svc.Performance(ctx, userID); err != nil {
		return err
	}
	if report.Streak, err = svc.Streak(ctx, userID); err != nil {
		return err
	}
	report.NextMilestone = streak.NextMilestone(report.Streak.CurrentStreak)

	recent, err := svc.RecentAttempts(ctx, userID, "", recentAttemptsShown)
	if err != nil {
		return err
	}
	report.Recent = make([]recentAttempt, len(recent))
	for i, a := range recent {
		report.Recent[i] = recentAttempt{
			ID:               a.ID,
			DocumentID:       a.DocumentID,
			Score:            a.Score,
			TimeTakenMinutes: a.TimeTakenMinutes,
			CompletedAt:      a.CompletedAt.Local().Format("2006-01-02 15:04"),
		}
	}

	days, _ := cmd.Flags().GetInt("days")
	if report.Patterns, err = svc.StudyPatterns(ctx, userID); err != nil {
		return err
	}
	if report.Trend, err = svc.PerformanceOverTime(ctx, userID, days); err != nil {
		return err
	}
	if report.Suggestions, err = svc.Suggestions(ctx, userID, nil); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintln(out, theme.Title.Render("Statistics for "+userID))
	if len(report.Records) == 0 {
		fmt.Fprintln(out, theme.Subtitle.Render("No quizzes completed yet."))
	}
	for _, rec := range report.Records {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s  %s\n", theme.Label.Render(rec.DocumentID), theme.Level(rec.Level).Render(rec.Level.DisplayName()))
		fmt.Fprintln(out, components.NewProgressBar("Average", rec.AverageScore/100, true, 50).View())
		fmt.Fprintf(out, "%d attempts, best %.1f%%, %d min studied, last on %s\n",
			rec.TotalAttempts, rec.BestScore, rec.TotalTimeMinutes, rec.LastAttemptDate.Local().Format("2006-01-02"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %d days (longest %d), next milestone at %d\n",
		theme.Label.Render("Streak:"), report.Streak.CurrentStreak, report.Streak.LongestStreak, report.NextMilestone)

	p := report.Patterns
	fmt.Fprintf(out, "%s studied %d of the last %d days (%.1f%%), %.1f min per day",
		theme.Label.Render("Habits:"), p.TotalStudyDays, mastery.PatternWindowDays, p.FrequencyPercent, p.AverageSessionMinutes)
	if p.BestDay != "" {
		fmt.Fprintf(out, ", most on %ss", p.BestDay)
	}
	fmt.Fprintln(out)

	if len(report.Recent) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Label.Render("Recent attempts:"))
		for _, a := range report.Recent {
			fmt.Fprintf(out, "  %s  %-20s %5.1f%%  %d min\n", a.CompletedAt, a.DocumentID, a.Score, a.TimeTakenMinutes)
		}
	}

	active := lo.Filter(report.Trend, func(d mastery.DailyScore, _ int) bool { return d.AverageScore != nil })
	if len(active) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Label.Render(fmt.Sprintf("Daily averages (last %d days):", days)))
		for _, d := range active {
			fmt.Fprintln(out, components.NewProgressBar(d.Date, *d.AverageScore/100, true, 50).View())
		}
	}

	printSuggestions(out, report.Suggestions)
	return nil
}

func printSuggestions(out io.Writer, suggestions []mastery.Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Label.Render("Suggestions:"))
	for _, sg := range suggestions {
		style := theme.Hint
		if sg.Priority == mastery.PriorityHigh {
			style = theme.Highlight
		}
		fmt.Fprintf(out, "  %s %s\n", style.Render(sg.Title+":"), sg.Description)
	}
}
