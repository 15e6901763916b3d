package match

import (
	"testing"

	"cashplan/internal/model"
)

func testBills() []model.BillTemplate {
	return []model.BillTemplate{
		{ID: "bill-rent", Label: "Rent", Enabled: true},
		{ID: "bill-energy", Label: "Energy Direct Debit", Enabled: true},
		{ID: "bill-water", Label: "Water", Enabled: false},
	}
}

func TestMatchBill_ExactLabel(t *testing.T) {
	m := New(0.5)
	tx := model.Transaction{Label: "rent"}

	id, ok := m.MatchBill(tx, testBills())
	if !ok || id != "bill-rent" {
		t.Fatalf("MatchBill = (%q, %v), want (bill-rent, true)", id, ok)
	}
}

func TestMatchBill_NoisyStatementText(t *testing.T) {
	m := New(0.5)
	tx := model.Transaction{Label: "DD ENERGY DIRECT DEBIT REF 4471"}

	id, ok := m.MatchBill(tx, testBills())
	if !ok || id != "bill-energy" {
		t.Fatalf("MatchBill = (%q, %v), want (bill-energy, true)", id, ok)
	}
}

func TestMatchBill_PartialOverlapBelowThreshold(t *testing.T) {
	m := New(0.9)
	// one of three energy tokens present
	tx := model.Transaction{Label: "energy drink"}

	if id, ok := m.MatchBill(tx, testBills()); ok {
		t.Fatalf("MatchBill matched %q below the confidence threshold", id)
	}
}

func TestMatchBill_DisabledBillIgnored(t *testing.T) {
	m := New(0.5)
	tx := model.Transaction{Label: "water"}

	if id, ok := m.MatchBill(tx, testBills()); ok {
		t.Fatalf("MatchBill matched disabled bill %q", id)
	}
}

func TestMatchBill_EmptyLabel(t *testing.T) {
	m := New(0.5)
	if id, ok := m.MatchBill(model.Transaction{Label: "- -"}, testBills()); ok {
		t.Fatalf("MatchBill matched %q for a label with no tokens", id)
	}
}

func TestNew_ClampsBadThreshold(t *testing.T) {
	for _, bad := range []float64{-1, 0, 1.5} {
		if m := New(bad); m.MinConfidence != DefaultConfidence {
			t.Fatalf("New(%v).MinConfidence = %v, want default %v", bad, m.MinConfidence, DefaultConfidence)
		}
	}
	if m := New(0.8); m.MinConfidence != 0.8 {
		t.Fatalf("New(0.8).MinConfidence = %v, want 0.8", m.MinConfidence)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("DD Energy-Direct_Debit 4471 x")
	want := []string{"dd", "energy", "direct", "debit", "4471"}
	if len(got) != len(want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}
