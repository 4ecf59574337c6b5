package textseg

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// WordsPerMinute is the reading speed used for reading-time estimates.
const WordsPerMinute = 200

var multiSpace = regexp.MustCompile(` +`)

// Stats summarizes a document's text.
type Stats struct {
	WordCount               int     `json:"word_count"`
	CharacterCount          int     `json:"character_count"`
	ParagraphCount          int     `json:"paragraph_count"`
	SentenceCount           int     `json:"sentence_count"`
	UsableSentences         int     `json:"usable_sentences"`
	ReadingTimeMinutes      int     `json:"reading_time_minutes"`
	AverageWordsPerSentence float64 `json:"average_words_per_sentence"`
}

// Clean normalizes freshly extracted text: every line is trimmed, empty
// lines are dropped, and runs of spaces collapse to one.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	lines := lo.FilterMap(strings.Split(text, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
	return multiSpace.ReplaceAllString(strings.Join(lines, "\n"), " ")
}

// ReadingTime estimates reading time in minutes. Non-empty text always
// takes at least one minute.
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(words)/WordsPerMinute)))
}

// ComputeStats returns descriptive statistics for text.
func ComputeStats(text string) Stats {
	if strings.TrimSpace(text) == "" {
		return Stats{}
	}
	words := WordCount(text)
	rawSentences := lo.CountBy(strings.Split(text, "."), func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
	paragraphs := lo.CountBy(strings.Split(text, "\n\n"), func(p string) bool {
		return strings.TrimSpace(p) != ""
	})
	return Stats{
		WordCount:               words,
		CharacterCount:          utf8.RuneCountInString(text),
		ParagraphCount:          paragraphs,
		SentenceCount:           rawSentences,
		UsableSentences:         len(SplitSentences(text)),
		ReadingTimeMinutes:      ReadingTime(words),
		AverageWordsPerSentence: float64(words) / float64(max(1, rawSentences)),
	}
}

// Summary returns the leading sentences of text that fit in maxLen
// characters.
func Summary(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, s := range strings.Split(text, ". ") {
		if utf8.RuneCountInString(b.String()+s) > maxLen {
			break
		}
		b.WriteString(s)
		b.WriteString(". ")
	}
	return strings.TrimSpace(b.String())
}
