package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.December, 22)

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-12-22"` {
		t.Fatalf("marshaled %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip gave %s, want %s", back, d)
	}
}

func TestDateJSON_Null(t *testing.T) {
	b, err := json.Marshal(Date{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Fatalf("zero date marshaled %s, want null", b)
	}

	var d Date
	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatal(err)
	}
	if !d.IsZero() {
		t.Fatalf("null unmarshaled to %s", d)
	}
}

func TestDateJSON_AcceptsTimestamps(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-12-22T18:30:00Z"`), &d); err != nil {
		t.Fatal(err)
	}
	if d.String() != "2025-12-22" {
		t.Fatalf("timestamp truncated to %s, want 2025-12-22", d)
	}
}

func TestDaysUntil(t *testing.T) {
	a := NewDate(2025, time.December, 22)
	b := NewDate(2026, time.January, 25)
	if got := a.DaysUntil(b); got != 34 {
		t.Fatalf("DaysUntil = %d, want 34", got)
	}
	if got := b.DaysUntil(a); got != -34 {
		t.Fatalf("reverse DaysUntil = %d, want -34", got)
	}
}

func TestPeriodDaysAndContains(t *testing.T) {
	p := Period{
		Start: NewDate(2025, time.December, 22),
		End:   NewDate(2026, time.January, 25),
	}
	if got := p.Days(); got != 35 {
		t.Fatalf("Days = %d, want 35", got)
	}
	for _, tc := range []struct {
		day  Date
		want bool
	}{
		{NewDate(2025, time.December, 22), true},
		{NewDate(2026, time.January, 25), true},
		{NewDate(2025, time.December, 21), false},
		{NewDate(2026, time.January, 26), false},
	} {
		if got := p.Contains(tc.day); got != tc.want {
			t.Fatalf("Contains(%s) = %v, want %v", tc.day, got, tc.want)
		}
	}
}
