package quizgen

import (
	"fmt"
	"strings"
)

// Blank replaces the hidden term in fill-in and multiple-choice prompts.
const Blank = "______"

const (
	multipleChoicePrompt = "What word or phrase best completes this statement?\n\n"
	fillBlankPrompt      = "Fill in the blank:\n\n"
	trueFalsePrompt      = "True or False: "
	mcDistractorCount    = 3
)

var shortAnswerTemplates = []string{
	"According to the document, what is %s?",
	"Define or explain %s as mentioned in the text.",
	"What does the document say about %s?",
}

// synthesizer builds one question of a fixed kind from the sentence pool.
// It returns false when the pool cannot yield a question.
type synthesizer func(rng Rand, pool []string) (Question, bool)

var synthesizers = map[Kind]synthesizer{
	KindMultipleChoice: synthesizeMultipleChoice,
	KindTrueFalse:      synthesizeTrueFalse,
	KindShortAnswer:    synthesizeShortAnswer,
	KindFillBlank:      synthesizeFillBlank,
}

// Synthesize builds a question of the given kind. Unknown kinds are
// built as multiple choice.
func Synthesize(rng Rand, kind Kind, pool []string) (Question, bool) {
	synth, ok := synthesizers[kind]
	if !ok {
		synth = synthesizeMultipleChoice
	}
	return synth(rng, pool)
}

// pickTerm selects a sentence and one of its key terms that occurs
// verbatim in it.
func pickTerm(rng Rand, pool []string) (sentence, term string, ok bool) {
	sentence, ok = SelectSentence(rng, pool)
	if !ok {
		return "", "", false
	}
	terms := termsInSentence(sentence)
	if len(terms) == 0 {
		return "", "", false
	}
	return sentence, terms[rng.IntN(len(terms))], true
}

func synthesizeMultipleChoice(rng Rand, pool []string) (Question, bool) {
	sentence, term, ok := pickTerm(rng, pool)
	if !ok {
		return Question{}, false
	}

	options := []Option{{Text: term, IsCorrect: true}}
	for _, d := range Distractors(rng, term, mcDistractorCount) {
		options = append(options, Option{Text: d})
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return Question{
		Kind:          KindMultipleChoice,
		Prompt:        multipleChoicePrompt + strings.ReplaceAll(sentence, term, Blank),
		CorrectAnswer: term,
		Options:       options,
		Explanation:   fmt.Sprintf("The correct answer is '%s' based on the context in the document.", term),
		Points:        KindMultipleChoice.Points(),
		Source:        sentence,
	}, true
}

func synthesizeTrueFalse(rng Rand, pool []string) (Question, bool) {
	sentence, ok := SelectSentence(rng, pool)
	if !ok {
		return Question{}, false
	}

	q := Question{
		Kind:   KindTrueFalse,
		Points: KindTrueFalse.Points(),
		Source: sentence,
	}
	if rng.IntN(2) == 0 {
		q.Prompt = trueFalsePrompt + sentence
		q.CorrectAnswer = "True"
		q.Explanation = "This statement is true according to the document."
	} else {
		q.Prompt = trueFalsePrompt + Falsify(sentence)
		q.CorrectAnswer = "False"
		q.Explanation = "This statement is false. The correct information is in the document."
	}
	return q, true
}

func synthesizeShortAnswer(rng Rand, pool []string) (Question, bool) {
	sentence, term, ok := pickTerm(rng, pool)
	if !ok {
		return Question{}, false
	}
	tmpl := shortAnswerTemplates[rng.IntN(len(shortAnswerTemplates))]
	return Question{
		Kind:          KindShortAnswer,
		Prompt:        fmt.Sprintf(tmpl, strings.ToLower(term)),
		CorrectAnswer: term,
		Explanation:   "The answer can be found in the context: " + sentence,
		Points:        KindShortAnswer.Points(),
		Source:        sentence,
	}, true
}

func synthesizeFillBlank(rng Rand, pool []string) (Question, bool) {
	sentence, term, ok := pickTerm(rng, pool)
	if !ok {
		return Question{}, false
	}
	return Question{
		Kind:          KindFillBlank,
		Prompt:        fillBlankPrompt + strings.ReplaceAll(sentence, term, Blank),
		CorrectAnswer: term,
		Explanation:   fmt.Sprintf("The correct answer is '%s'.", term),
		Points:        KindFillBlank.Points(),
		Source:        sentence,
	}, true
}
