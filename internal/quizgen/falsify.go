package quizgen

import "strings"

// polarityRules are tried in order; the first whose pattern occurs in
// the sentence is applied to that first occurrence.
var polarityRules = []struct{ from, to string }{
	{" is ", " is not "},
	{" are ", " are not "},
	{" was ", " was not "},
	{" were ", " were not "},
	{" can ", " cannot "},
	{" will ", " will not "},
	{" should ", " should not "},
}

var auxiliaries = map[string]bool{
	"is": true, "are": true, "was": true, "were": true,
	"can": true, "will": true, "should": true, "has": true, "have": true,
}

// Falsify inverts the polarity of a statement. It negates the first
// auxiliary it recognizes and otherwise wraps the whole sentence in
// "It is not true that".
func Falsify(sentence string) string {
	for _, rule := range polarityRules {
		if strings.Contains(sentence, rule.from) {
			return strings.Replace(sentence, rule.from, rule.to, 1)
		}
	}

	words := strings.Fields(sentence)
	for i, w := range words {
		if auxiliaries[strings.ToLower(w)] {
			out := make([]string, 0, len(words)+1)
			out = append(out, words[:i+1]...)
			out = append(out, "not")
			out = append(out, words[i+1:]...)
			return strings.Join(out, " ")
		}
	}

	return "It is not true that " + strings.ToLower(sentence)
}
