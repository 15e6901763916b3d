// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"cashplan/internal/model"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with the configured currency symbol
// and thousands separators, e.g. "£1,234.56".
func FormatMoney(currency string, amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(s, ".")
	formatted := currency + groupThousands(whole) + "." + frac
	if neg {
		return "-" + formatted
	}
	return formatted
}

// FormatSignedMoney always carries an explicit sign, for deltas and
// variances: "+£50.00", "-£12.30".
func FormatSignedMoney(currency string, amount decimal.Decimal) string {
	if amount.IsNegative() {
		return FormatMoney(currency, amount)
	}
	return "+" + FormatMoney(currency, amount)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatDate renders a date as "Mon 02 Jan".
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return "—"
	}
	return d.Format("Mon 02 Jan")
}

// FormatDateRange renders "22 Dec – 25 Jan".
func FormatDateRange(start, end model.Date) string {
	return start.Format("02 Jan") + " – " + end.Format("02 Jan")
}

// StatusLabel renders a colored over/under/on-track chip.
func StatusLabel(status model.VarianceStatus) string {
	switch status {
	case model.StatusOver:
		return warnTextStyle.Render("over")
	case model.StatusUnder:
		return goodTextStyle.Render("under")
	default:
		return mutedStyle.Render("on track")
	}
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
