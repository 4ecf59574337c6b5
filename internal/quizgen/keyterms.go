package quizgen

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// minLongWordLen is the exclusive lower bound at which a word counts as
// a key term on length alone.
const minLongWordLen = 6

// stripPunct removes every rune that is not a letter, digit, underscore
// or whitespace.
func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// ExtractKeyTerms returns the salient terms of a sentence: proper-noun
// looking words, numerals, long words, and pairs of adjacent capitalized
// words. The result is deduplicated and sorted.
func ExtractKeyTerms(sentence string) []string {
	words := strings.Fields(sentence)
	var terms []string

	for _, w := range words {
		clean := stripPunct(w)
		if clean == "" {
			continue
		}
		if startsUpper(clean) || isDigits(clean) || utf8.RuneCountInString(clean) > minLongWordLen {
			terms = append(terms, clean)
		}
	}

	for i := 0; i+1 < len(words); i++ {
		if startsUpper(words[i]) && startsUpper(words[i+1]) {
			if phrase := stripPunct(words[i] + " " + words[i+1]); strings.TrimSpace(phrase) != "" {
				terms = append(terms, phrase)
			}
		}
	}

	terms = lo.Uniq(terms)
	sort.Strings(terms)
	return terms
}

// termsInSentence returns the key terms that occur verbatim in sentence,
// so they can be blanked out.
func termsInSentence(sentence string) []string {
	return lo.Filter(ExtractKeyTerms(sentence), func(t string, _ int) bool {
		return strings.Contains(sentence, t)
	})
}
