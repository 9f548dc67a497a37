// Package format renders raw feed values (amounts, timestamps, addresses, handles) for display
package format

import "strings"

// Value shortens a decimal amount string for display.
// Amounts with a fraction and an integer part under 5 digits keep the fraction,
// cut to 2 digits, 3 when they start with "0" and 4 when they start with "00".
// Integer parts of 5-6 digits drop 3 digits and gain "K"; longer ones drop 6 and gain "M".
// This is a display heuristic: "123456" becomes "123K" with no rounding
func Value(raw string) string {
	intPart, frac, _ := strings.Cut(raw, ".")
	if frac != "" && len(intPart) < 5 {
		keep := 2
		switch {
		case strings.HasPrefix(frac, "00"):
			keep = 4
		case strings.HasPrefix(frac, "0"):
			keep = 3
		}
		return intPart + "." + prefix(frac, keep)
	}

	switch n := len(intPart); {
	case n > 6:
		return intPart[:n-6] + "M"
	case n > 4:
		return intPart[:n-3] + "K"
	default:
		return intPart
	}
}

// Truncate keeps at most n bytes of s
func Truncate(s string, n int) string { return prefix(s, n) }

func prefix(s string, n int) string {
	if n < 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}
