package textseg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	in := "  First   line  \n\n\n   second line\t\n   \nthird"
	assert.Equal(t, "First line\nsecond line\nthird", Clean(in))
	assert.Equal(t, "", Clean(""))
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{-3, 0},
		{1, 1},
		{99, 1},
		{300, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.words); got != tt.want {
			t.Errorf("ReadingTime(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestComputeStats(t *testing.T) {
	text := "Cells divide by mitosis. Mitosis has four phases.\n\nEach phase has a name."
	s := ComputeStats(text)
	assert.Equal(t, 13, s.WordCount)
	assert.Equal(t, 3, s.SentenceCount)
	assert.Equal(t, 2, s.ParagraphCount)
	assert.Equal(t, 3, s.UsableSentences)
	assert.Equal(t, 1, s.ReadingTimeMinutes)
	assert.InDelta(t, 13.0/3.0, s.AverageWordsPerSentence, 1e-9)

	assert.Equal(t, Stats{}, ComputeStats("   "))
}

func TestSummary(t *testing.T) {
	text := "One sentence here. Another one follows. " + strings.Repeat("x", 100)
	assert.Equal(t, "One sentence here. Another one follows.", Summary(text, 45))
	assert.Equal(t, "", Summary("", 10))
}
