// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount formats a money value with grouping and two decimals.
// e.g., 1234.5 -> "1,234.50", -20 -> "-20.00"
func FormatAmount(v float64) string {
	if v == 0 || math.Abs(v) < 0.005 {
		v = 0 // avoid "-0.00"
	}
	return printer.Sprintf("%.2f", v)
}

// FormatMoney prefixes FormatAmount with a currency symbol, keeping the sign
// in front. e.g., ("€", -5) -> "-€5.00"
func FormatMoney(symbol string, v float64) string {
	s := FormatAmount(v)
	if strings.HasPrefix(s, "-") {
		return "-" + symbol + s[1:]
	}
	return symbol + s
}

// FormatRemaining is the fixed two-decimal form used in the ledger column.
func FormatRemaining(v float64) string {
	if math.Abs(v) < 0.005 {
		v = 0
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a difference with an explicit sign.
func FormatDelta(symbol string, current, reference float64) string {
	delta := current - reference
	if delta >= 0 {
		return "+" + FormatMoney(symbol, delta)
	}
	return FormatMoney(symbol, delta)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// OrDash returns s, or an em dash placeholder when s is empty.
func OrDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
