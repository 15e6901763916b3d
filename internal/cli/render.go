package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Theme colors (Flexoki Dark).
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	goodTextStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnTextStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	alertTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// Table represents a bordered text table for CLI output. A row of
// []string{"---"} renders as a separator line.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. The
// first column is left-aligned, the rest right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		if lipgloss.Width(h) > widths[i] {
			widths[i] = lipgloss.Width(h)
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(borderLine(widths, "╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], i == 0)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(borderLine(widths, "├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(borderLine(widths, "├", "┼", "┤"))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], i == 0)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(borderLine(widths, "╰", "┴", "╯"))
	return b.String()
}

// RenderBalanceSparkline draws one block per timeline day, scaled
// between the series min and max so negative balances still plot.
// Days below the minimum balance render in red.
func RenderBalanceSparkline(balances []decimal.Decimal, belowMin []bool) string {
	if len(balances) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := balances[0], balances[0]
	for _, v := range balances[1:] {
		if v.LessThan(lo) {
			lo = v
		}
		if v.GreaterThan(hi) {
			hi = v
		}
	}
	span, _ := hi.Sub(lo).Float64()
	if span == 0 {
		span = 1
	}

	okStyle := lipgloss.NewStyle().Foreground(ColorBlue)

	var b strings.Builder
	for i, v := range balances {
		rel, _ := v.Sub(lo).Float64()
		idx := int(rel / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		style := okStyle
		if i < len(belowMin) && belowMin[i] {
			style = alertTextStyle
		}
		b.WriteString(style.Render(string(blocks[idx])))
	}
	return b.String()
}

// RenderRatioBar renders a filled/empty usage bar that shifts color as
// the ratio climbs.
func RenderRatioBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))

	color := ColorGreen
	if ratio >= 0.8 {
		color = ColorRed
	} else if ratio >= 0.5 {
		color = ColorOrange
	}

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

func borderLine(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
	return b.String()
}

func pad(cell string, width int, leftAlign bool) string {
	gap := width - lipgloss.Width(cell)
	if gap < 0 {
		gap = 0
	}
	if leftAlign {
		return " " + cell + strings.Repeat(" ", gap) + " "
	}
	return " " + strings.Repeat(" ", gap) + cell + " "
}

// Warn prints a styled warning line to the given writer's format.
func Warn(format string, args ...any) string {
	return warnTextStyle.Render(fmt.Sprintf(format, args...))
}
