package model

import "testing"

func TestObligationsAddAppendsEmpty(t *testing.T) {
	var obs Obligations
	obs.Add()
	obs.Add()

	if len(obs) != 2 {
		t.Fatalf("len = %d, want 2", len(obs))
	}
	for i, ob := range obs {
		if ob.Description != "" || ob.Amount != 0 {
			t.Fatalf("obs[%d] = %+v, want empty obligation", i, ob)
		}
	}
}

func TestObligationsRemove(t *testing.T) {
	obs := Obligations{{"a", 1}, {"b", 2}, {"c", 3}}

	if !obs.Remove(1) {
		t.Fatal("Remove(1) = false, want true")
	}
	if len(obs) != 2 || obs[0].Description != "a" || obs[1].Description != "c" {
		t.Fatalf("after Remove(1) = %+v, want [a c]", obs)
	}

	for _, idx := range []int{-1, 2, 99} {
		if obs.Remove(idx) {
			t.Fatalf("Remove(%d) = true, want silent no-op", idx)
		}
	}
	if len(obs) != 2 {
		t.Fatalf("len after out-of-range removes = %d, want 2", len(obs))
	}
}

func TestObligationsUpdate(t *testing.T) {
	obs := Obligations{{"Trip", 500}}

	obs.Update(0, FieldDescription, "")
	if obs[0].Description != "" {
		t.Fatalf("Description = %q, want empty", obs[0].Description)
	}

	obs.Update(0, FieldAmount, "120.5")
	if obs[0].Amount != 120.5 {
		t.Fatalf("Amount = %v, want 120.5", obs[0].Amount)
	}

	obs.Update(0, FieldAmount, "lots")
	if obs[0].Amount != 0 {
		t.Fatalf("Amount after bad input = %v, want 0", obs[0].Amount)
	}

	if obs.Update(3, FieldAmount, "1") {
		t.Fatal("Update out of range = true, want false")
	}
}

func TestObligationsTotalAndClone(t *testing.T) {
	obs := Obligations{{"a", 300}, {"b", 500}, {"c", -50}}
	if got := obs.Total(); got != 750 {
		t.Fatalf("Total = %v, want 750", got)
	}

	cp := obs.Clone()
	cp[0].Amount = 1
	if obs[0].Amount != 300 {
		t.Fatal("Clone shares backing array with original")
	}
	if Obligations(nil).Clone() != nil {
		t.Fatal("Clone of nil should stay nil")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"42", 42},
		{" 19.99 ", 19.99},
		{"-5", -5},
		{".5", 0.5},
		{"12.5 EUR", 12.5},
		{"1e2", 100},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDaysSkipsObligations(t *testing.T) {
	st := BudgetState{Entries: []LedgerEntry{
		{Label: "Gift"},
		{Label: "Monday", Date: mustDay(t, "2024-01-08")},
	}}
	days := st.Days()
	if len(days) != 1 || days[0].Label != "Monday" {
		t.Fatalf("Days() = %+v, want only Monday", days)
	}

	empty := BudgetState{Entries: []LedgerEntry{{Label: "Gift"}}}
	if empty.Days() != nil {
		t.Fatal("Days() with only obligations should be nil")
	}
}
