// Package textseg splits extracted document text into the sentence and
// paragraph pools that question synthesis draws from.
package textseg

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinSentenceLen is the exclusive lower bound on a sentence's length
	// (in characters, after trimming).
	MinSentenceLen = 10

	// MinParagraphLen is the exclusive lower bound on a paragraph's length.
	MinParagraphLen = 50
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// SourceText is a document's text with its derived sentence and
// paragraph pools. It is never persisted.
type SourceText struct {
	Text       string
	Sentences  []string
	Paragraphs []string
}

// Segment derives the sentence and paragraph pools from text.
// Empty input yields empty pools.
func Segment(text string) SourceText {
	return SourceText{
		Text:       text,
		Sentences:  SplitSentences(text),
		Paragraphs: SplitParagraphs(text),
	}
}

// SplitSentences splits text on runs of terminal punctuation and keeps
// trimmed fragments longer than MinSentenceLen characters.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, s := range sentenceBoundary.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > MinSentenceLen {
			out = append(out, s)
		}
	}
	return out
}

// SplitParagraphs splits text on blank lines and keeps trimmed blocks
// longer than MinParagraphLen characters.
func SplitParagraphs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) > MinParagraphLen {
			out = append(out, p)
		}
	}
	return out
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
