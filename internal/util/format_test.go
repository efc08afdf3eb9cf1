package util

import (
	"testing"
	"time"
)

func TestFormatPValue(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0.0321, "0.032"},
		{0.05, "0.050"},
		{0.5, "0.500"},
		{0.001, "0.001"},
		{0.0004, "< 0.001"},
		{0, "< 0.001"},
	}
	for _, tt := range tests {
		if got := FormatPValue(tt.p); got != tt.want {
			t.Errorf("FormatPValue(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := FormatSeconds(1.5); got != "1.500s" {
		t.Errorf("FormatSeconds(1.5) = %q", got)
	}
	if got := FormatSeconds(12.3456); got != "12.346s" {
		t.Errorf("FormatSeconds(12.3456) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(25.0); got != "25.0%" {
		t.Errorf("FormatPercent(25.0) = %q", got)
	}
	if got := FormatPercent(33.333); got != "33.3%" {
		t.Errorf("FormatPercent(33.333) = %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{500, "500"},
		{999, "999"},
		{1500, "1.5K"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.n); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 30, 5, 0, time.UTC)
	if got := FormatDateTime(ts); got != "2026-03-01 09:30:05" {
		t.Errorf("FormatDateTime = %q", got)
	}
}
