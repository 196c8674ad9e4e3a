// Package numeric parses the money strings returned by the FIPE upstreams.
//
// Both providers format values the Brazilian way ("R$ 12.345,67"), but not
// consistently: some fields carry the currency prefix, some are bare, and
// scores may arrive as "95" or "95,5". All of that is handled here so no
// caller has to care about the locale.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

const currencyPrefix = "R$"

// Parse converts a locale-formatted number into a float64.
// It never fails loudly: unparseable input yields NaN
func Parse(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN()
	}

	// "R$ 1.234,56" -> "1.234,56"
	s = strings.TrimSpace(strings.ReplaceAll(s, currencyPrefix, ""))

	// "1.234,56" -> "1234,56" -> "1234.56"
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimSpace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}

	return f
}

// OrZero returns v, or 0 if v is not a finite number
func OrZero(v float64) float64 {
	if !Valid(v) {
		return 0
	}

	return v
}

// Valid reports whether v is a usable (finite) value
func Valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Format renders v the way the upstreams do ("R$ 12.345,67")
func Format(v float64) string {
	if !Valid(v) {
		return ""
	}

	cents := int64(math.Round(math.Abs(v) * 100))

	var (
		intPart  = strconv.FormatInt(cents/100, 10)
		fracPart = cents % 100
		grouped  strings.Builder
	)

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}

		grouped.WriteRune(r)
	}

	sign := ""
	if v < 0 && cents != 0 {
		sign = "-"
	}

	return currencyPrefix + " " + sign + grouped.String() + "," + twoDigits(fracPart)
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}

	return strconv.FormatInt(n, 10)
}
