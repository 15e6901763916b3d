// Package match implements the fuzzy bill matcher injected into
// variance calculations. It scores normalized token overlap between a
// transaction label and each bill label; anything below the confidence
// threshold is treated as no match.
package match

import (
	"strings"

	"cashplan/internal/model"
)

// DefaultConfidence is the score a candidate must reach before it is
// trusted as a match.
const DefaultConfidence = 0.5

// LabelMatcher matches transactions to bills by label similarity.
type LabelMatcher struct {
	MinConfidence float64
}

// New returns a matcher with the given confidence threshold; values
// outside (0, 1] fall back to DefaultConfidence.
func New(minConfidence float64) *LabelMatcher {
	if minConfidence <= 0 || minConfidence > 1 {
		minConfidence = DefaultConfidence
	}
	return &LabelMatcher{MinConfidence: minConfidence}
}

// MatchBill returns the id of the best-scoring bill, or false when no
// bill clears the confidence threshold. Disabled bills are ignored.
func (m *LabelMatcher) MatchBill(tx model.Transaction, bills []model.BillTemplate) (string, bool) {
	txTokens := tokenize(tx.Label)
	if len(txTokens) == 0 {
		return "", false
	}

	bestID := ""
	bestScore := 0.0
	for _, bill := range bills {
		if !bill.Enabled {
			continue
		}
		score := overlap(txTokens, tokenize(bill.Label))
		if score > bestScore {
			bestID, bestScore = bill.ID, score
		}
	}

	if bestScore < m.MinConfidence {
		return "", false
	}
	return bestID, true
}

// tokenize lowercases and splits a label on non-alphanumeric runes.
func tokenize(label string) []string {
	fields := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	var out []string
	for _, f := range fields {
		if len(f) > 1 { // single characters carry no signal
			out = append(out, f)
		}
	}
	return out
}

// overlap is the fraction of bill tokens present in the transaction
// label. A bill label fully contained in the transaction label scores
// a clean 1.0 even when the statement text carries extra noise.
func overlap(txTokens, billTokens []string) float64 {
	if len(billTokens) == 0 {
		return 0
	}
	seen := map[string]bool{}
	for _, t := range txTokens {
		seen[t] = true
	}
	hits := 0
	for _, t := range billTokens {
		if seen[t] {
			hits++
		}
	}
	return float64(hits) / float64(len(billTokens))
}
