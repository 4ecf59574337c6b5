package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/docquiz/internal/quizgen"
	"github.com/abhisek/docquiz/internal/textseg"
	"github.com/abhisek/docquiz/internal/ui/theme"
)

const (
	summaryLength = 300
	maxShownTerms = 15
)

type inspectReport struct {
	Document string        `json:"document"`
	Stats    textseg.Stats `json:"stats"`
	Summary  string        `json:"summary"`
	KeyTerms []string      `json:"key_terms"`
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show statistics and key terms of a document",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	text := textseg.Clean(string(raw))
	src := textseg.Segment(text)

	terms := lo.Uniq(lo.FlatMap(src.Sentences, func(s string, _ int) []string {
		return quizgen.ExtractKeyTerms(s)
	}))
	sort.Strings(terms)

	report := inspectReport{
		Document: documentID(args[0]),
		Stats:    textseg.ComputeStats(string(raw)),
		Summary:  textseg.Summary(text, summaryLength),
		KeyTerms: terms,
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	st := report.Stats
	fmt.Fprintln(out, theme.Title.Render(report.Document))
	fmt.Fprintf(out, "%s %d words, %d characters, %d paragraphs\n",
		theme.Label.Render("Size:"), st.WordCount, st.CharacterCount, st.ParagraphCount)
	fmt.Fprintf(out, "%s %d (%d usable for questions), %.1f words each\n",
		theme.Label.Render("Sentences:"), st.SentenceCount, st.UsableSentences, st.AverageWordsPerSentence)
	fmt.Fprintf(out, "%s %d min\n", theme.Label.Render("Reading time:"), st.ReadingTimeMinutes)

	shown := terms
	if len(shown) > maxShownTerms {
		shown = shown[:maxShownTerms]
	}
	fmt.Fprintf(out, "%s %d", theme.Label.Render("Key terms:"), len(terms))
	if len(shown) > 0 {
		fmt.Fprintf(out, " (%s", shown[0])
		for _, t := range shown[1:] {
			fmt.Fprintf(out, ", %s", t)
		}
		if len(terms) > len(shown) {
			fmt.Fprint(out, ", ...")
		}
		fmt.Fprint(out, ")")
	}
	fmt.Fprintln(out)

	if report.Summary != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Subtitle.Render(report.Summary))
	}
	if st.UsableSentences == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Incorrect.Render("Not enough content to generate questions."))
	}
	return nil
}
