package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("neon").Name; got != FlexokiDark.Name {
		t.Fatalf("ByName(neon) = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestNamesAreValid(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names() = %d entries, want %d", len(names), len(All))
	}
	for _, n := range names {
		if !Valid(n) {
			t.Fatalf("Valid(%q) = false", n)
		}
	}
	if Valid("") {
		t.Fatal("empty name reported valid")
	}
}

func TestSetActive(t *testing.T) {
	prev := Active
	defer func() { Active = prev }()

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q, want terminal", Active.Name)
	}
}
