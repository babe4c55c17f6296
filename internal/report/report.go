// Package report renders scenarios and recommendations as terminal text.
// Numbers follow the configured locale; amounts carry the configured currency code.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer writes reports to one output
type Renderer struct {
	out   io.Writer
	p     *message.Printer
	unit  currency.Unit
	lg    *lipgloss.Renderer
	theme Theme
}

// New creates a renderer for w. Colors are only emitted when w is a terminal.
func New(w io.Writer, tag language.Tag, unit currency.Unit) *Renderer {
	return &Renderer{
		out:   w,
		p:     message.NewPrinter(tag),
		unit:  unit,
		lg:    lipgloss.NewRenderer(w),
		theme: DefaultTheme,
	}
}

// Money formats an amount with two decimals and the currency code
func (r *Renderer) Money(v float64) string {
	return r.p.Sprintf("%s %.2f", r.unit.String(), cleanZero(v))
}

// Number formats a value with locale grouping and 0, 1 or 2 decimals
func (r *Renderer) Number(v float64, decimals int) string {
	switch {
	case decimals <= 0:
		return r.p.Sprintf("%.0f", cleanZero(v))
	case decimals == 1:
		return r.p.Sprintf("%.1f", cleanZero(v))
	default:
		return r.p.Sprintf("%.2f", cleanZero(v))
	}
}

// Percent formats a 0-100 percentage with one decimal
func (r *Renderer) Percent(v float64) string {
	return r.p.Sprintf("%.1f%%", cleanZero(v))
}

// Ratio formats a ROAS-style multiple
func (r *Renderer) Ratio(v float64) string {
	return r.p.Sprintf("%.2fx", cleanZero(v))
}

// signed prefixes positive values with "+"
func signed(s string, v float64) string {
	if cleanZero(v) > 0 {
		return "+" + s
	}
	return s
}

// cleanZero turns -0 into 0 so it never prints as "-0.00"
func cleanZero(v float64) float64 {
	if v == 0 || math.Abs(v) < 5e-10 {
		return 0
	}
	return v
}

func (r *Renderer) style() lipgloss.Style {
	return r.lg.NewStyle()
}

func (r *Renderer) title(text string) string {
	return r.style().Bold(true).Foreground(r.theme.Primary).Render(text)
}

// newTable right-aligns every column but the first; textTable aligns all left
func (r *Renderer) newTable(headers ...string) *table.Table {
	return r.baseTable(true, headers...)
}

func (r *Renderer) textTable(headers ...string) *table.Table {
	return r.baseTable(false, headers...)
}

func (r *Renderer) baseTable(numeric bool, headers ...string) *table.Table {
	headerStyle := r.style().Bold(true).Padding(0, 1)
	cellStyle := r.style().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.style().Foreground(r.theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if numeric && col > 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
}

func (r *Renderer) write(blocks ...string) error {
	if _, err := fmt.Fprintln(r.out, strings.Join(blocks, "\n")); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
