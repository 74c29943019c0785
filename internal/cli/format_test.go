package cli

import "testing"

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{700, "700.00"},
		{1234.5, "1,234.50"},
		{-20, "-20.00"},
		{-0.001, "0.00"},
		{1234567.891, "1,234,567.89"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney("€", 1500); got != "€1,500.00" {
		t.Fatalf("FormatMoney = %q", got)
	}
	if got := FormatMoney("$", -5); got != "-$5.00" {
		t.Fatalf("FormatMoney negative = %q", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	if got := FormatRemaining(650); got != "650.00" {
		t.Fatalf("FormatRemaining(650) = %q", got)
	}
	if got := FormatRemaining(-1234.567); got != "-1234.57" {
		t.Fatalf("FormatRemaining(-1234.567) = %q", got)
	}
	if got := FormatRemaining(-0.0001); got != "0.00" {
		t.Fatalf("FormatRemaining(-0.0001) = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta("€", 120, 100); got != "+€20.00" {
		t.Fatalf("FormatDelta over = %q", got)
	}
	if got := FormatDelta("€", 80, 100); got != "-€20.00" {
		t.Fatalf("FormatDelta under = %q", got)
	}
}

func TestOrDash(t *testing.T) {
	if OrDash("") != "—" || OrDash("2024-01-06") != "2024-01-06" {
		t.Fatal("OrDash placeholder mismatch")
	}
}

func TestFormatDayOfWeek(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "Sun"},
		{6, "Sat"},
		{7, "???"},
		{-1, "???"},
	}
	for _, tt := range tests {
		if got := FormatDayOfWeek(tt.in); got != tt.want {
			t.Errorf("FormatDayOfWeek(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
