package report

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the semantic colors used in terminal reports
type Theme struct {
	Border   lipgloss.Color
	Muted    lipgloss.Color
	Text     lipgloss.Color
	Primary  lipgloss.Color
	Positive lipgloss.Color
	Warning  lipgloss.Color
	Negative lipgloss.Color
	Info     lipgloss.Color
}

// DefaultTheme uses the CharmTone palette
var DefaultTheme = Theme{
	Border:   lipgloss.Color("#4D4C57"), // Iron
	Muted:    lipgloss.Color("#858392"), // Squid
	Text:     lipgloss.Color("#DFDBDD"), // Ash
	Primary:  lipgloss.Color("#6B50FF"), // Charple
	Positive: lipgloss.Color("#00FFB2"), // Julep
	Warning:  lipgloss.Color("#FFD300"),
	Negative: lipgloss.Color("#E94090"),
	Info:     lipgloss.Color("#00CED1"),
}

// ChangeColor picks the color for a signed change. Zero is muted.
func (t Theme) ChangeColor(change float64) lipgloss.Color {
	switch {
	case change > 0:
		return t.Positive
	case change < 0:
		return t.Negative
	default:
		return t.Muted
	}
}

// HealthColor follows the STRONG / MODERATE / WEAK tiers
func (t Theme) HealthColor(health float64) lipgloss.Color {
	switch {
	case health > 70:
		return t.Positive
	case health > 40:
		return t.Warning
	default:
		return t.Negative
	}
}

// Sub-character block elements for fractional fill (1/8 to 8/8)
var fractionalBlocks = []rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

// scoreBar renders a left-anchored bar for a score in [0, 100]
func scoreBar(score float64, width int) string {
	score = math.Max(0, math.Min(100, score))
	if width < 1 {
		width = 1
	}

	fillCells := score / 100 * float64(width)
	fullCells := int(fillCells)
	fraction := fillCells - float64(fullCells)

	bar := []rune(strings.Repeat("░", width))
	for i := 0; i < fullCells && i < width; i++ {
		bar[i] = '█'
	}
	if fraction > 0 && fullCells < width {
		idx := int(fraction*8) - 1
		if idx < 0 {
			idx = 0
		}
		bar[fullCells] = fractionalBlocks[idx]
	}
	return string(bar)
}
