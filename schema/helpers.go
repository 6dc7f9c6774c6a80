package schema

import (
	"math"
	"path/filepath"
	"strings"
	"time"
)

// Round2 rounds a float to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ExtensionOf returns the file extension without the leading dot, or
// "unknown" for extensionless paths.
func ExtensionOf(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// FileAgeDays returns the file lifetime in fractional days between the first
// and last commit, floored at 1 so churn rates never divide by zero.
func FileAgeDays(first, last time.Time) float64 {
	age := last.Sub(first).Hours() / 24
	if age < 1 {
		return 1
	}
	return age
}
