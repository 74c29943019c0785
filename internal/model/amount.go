package model

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads a free-form amount. Anything that does not start with a
// number, including the empty string, is 0. Trailing garbage after a leading
// number is dropped ("12.5 EUR" -> 12.5).
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		prefix := numericPrefix.FindString(s)
		if prefix == "" {
			return 0
		}
		v, err = strconv.ParseFloat(prefix, 64)
		if err != nil {
			return 0
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RoundCents rounds to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
