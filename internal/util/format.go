package util

import (
	"fmt"
	"time"
)

// FormatPValue formats a p-value the way it appears in results tables.
// Very small values are reported as a bound rather than a rounded zero.
// Examples: 0.0321 -> "0.032", 0.00004 -> "< 0.001"
func FormatPValue(p float64) string {
	if p < 0.001 {
		return "< 0.001"
	}
	return fmt.Sprintf("%.3f", p)
}

// FormatSeconds formats a duration measured in seconds.
// Examples: 1.5 -> "1.500s", 12.3456 -> "12.346s"
func FormatSeconds(s float64) string {
	return fmt.Sprintf("%.3fs", s)
}

// FormatPercent formats a percentage already scaled to 0-100.
// Examples: 25.0 -> "25.0%", 33.333 -> "33.3%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatCount formats an int with a K suffix above a thousand.
// Examples: 500 -> "500", 1500 -> "1.5K"
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%.1fK", float64(n)/1000)
}

// FormatDateTime formats a time to date-time format (2006-01-02 15:04:05).
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
