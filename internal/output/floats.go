// Package output holds the helpers that keep rendered results
// byte-reproducible: float rounding, stable ordering, canonical encoding.
package output

import (
	"math"
	"strconv"
	"strings"
)

// RoundFloat rounds a float to max 6 decimal places and removes trailing zeros
func RoundFloat(f float64) float64 {
	multiplier := math.Pow(10, 6)
	return math.Round(f*multiplier) / multiplier
}

// FormatFloat formats a float with no trailing zeros
func FormatFloat(f float64) string {
	str := strconv.FormatFloat(RoundFloat(f), 'f', 6, 64)
	str = strings.TrimRight(str, "0")
	str = strings.TrimRight(str, ".")
	return str
}
