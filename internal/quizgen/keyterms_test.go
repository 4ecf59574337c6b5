package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedRand always draws the same float, picks index 0 and never
// reorders.
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64           { return r.f }
func (r fixedRand) IntN(int) int                { return 0 }
func (r fixedRand) Shuffle(int, func(i, j int)) {}

func TestExtractKeyTerms(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []string
	}{
		{
			name:     "capitalized and long words",
			sentence: "The mitochondria is the powerhouse of the cell",
			want:     []string{"The", "mitochondria", "powerhouse"},
		},
		{
			name:     "digits and adjacent capitals",
			sentence: "Marie Curie discovered radium in 1898.",
			want:     []string{"1898", "Curie", "Marie", "Marie Curie", "discovered"},
		},
		{
			name:     "duplicates collapse",
			sentence: "Paris, Paris and Paris again",
			want:     []string{"Paris", "Paris Paris"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeyTerms(tt.sentence))
		})
	}
}

func TestExtractKeyTerms_None(t *testing.T) {
	assert.Empty(t, ExtractKeyTerms("a cat sat on a mat"))
	assert.Empty(t, ExtractKeyTerms(""))
	assert.Empty(t, ExtractKeyTerms("... !!! ??"))
}

func TestTermsInSentence(t *testing.T) {
	// "Marie Curie" stripped from "Marie, Curie" does not occur verbatim.
	got := termsInSentence("Marie, Curie won")
	assert.Equal(t, []string{"Curie", "Marie"}, got)
}

func TestFalsify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Water is wet and cold", "Water is not wet and cold"},
		{"Cats are small mammals", "Cats are not small mammals"},
		{"Rome was not built in a day", "Rome was not not built in a day"},
		{"Birds can fly very far", "Birds cannot fly very far"},
		{"A is B and C is D", "A is not B and C is D"},
		{"Is this the answer", "Is not this the answer"},
		{"Plants have deep roots", "Plants have not deep roots"},
		{"Photosynthesis produces Oxygen", "It is not true that photosynthesis produces oxygen"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Falsify(tt.in), tt.in)
	}
}
