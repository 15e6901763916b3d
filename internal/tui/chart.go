package tui

import (
	"strings"

	"cashplan/internal/model"
	"cashplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// balanceChart renders the timeline as a column chart scaled between
// the series minimum and maximum, so negative balances still plot.
// Columns for days below the minimum balance draw in red.
func balanceChart(rows []model.TimelineRow, width, height int) string {
	if len(rows) == 0 || width < 10 || height < 2 {
		return ""
	}
	t := theme.Active

	// Sample down to one column per available cell.
	cols := rows
	if len(cols) > width {
		sampled := make([]model.TimelineRow, width)
		for i := range sampled {
			sampled[i] = cols[i*(len(cols)-1)/(width-1)]
		}
		cols = sampled
	}

	lo, _ := cols[0].Balance.Float64()
	hi := lo
	for _, r := range cols[1:] {
		v, _ := r.Balance.Float64()
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	okStyle := lipgloss.NewStyle().Foreground(t.Blue)
	riskStyle := lipgloss.NewStyle().Foreground(t.Red)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	levels := make([]float64, len(cols))
	for i, r := range cols {
		v, _ := r.Balance.Float64()
		levels[i] = (v - lo) / span * float64(height)
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		for i, level := range levels {
			style := okStyle
			if cols[i].BelowMin {
				style = riskStyle
			}
			switch {
			case level >= float64(row):
				b.WriteString(style.Render("█"))
			case level > float64(row-1):
				frac := level - float64(row-1)
				idx := int(frac * 8)
				if idx < 1 {
					idx = 1
				}
				if idx > 8 {
					idx = 8
				}
				b.WriteString(style.Render(string(blocks[idx])))
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(axisStyle.Render(strings.Repeat("─", len(cols))))
	return b.String()
}
