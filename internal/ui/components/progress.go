package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/docquiz/internal/ui/theme"
)

// ProgressBar renders a horizontal bar for a score or accuracy.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Cells returns the number of filled and empty cells of the bar.
func (p ProgressBar) Cells() (filled, empty int) {
	barWidth := p.Width - lipgloss.Width(p.label())
	if p.ShowPercent {
		barWidth -= 6 // "  100%"
	}
	barWidth = max(barWidth, 4)

	filled = min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
	return filled, barWidth - filled
}

func (p ProgressBar) label() string {
	if p.Label == "" {
		return ""
	}
	return p.Label + "  "
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label) + "  ")
	}

	filled, empty := p.Cells()
	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", empty)))

	if p.ShowPercent {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}
	return b.String()
}
