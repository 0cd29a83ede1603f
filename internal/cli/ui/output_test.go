package ui

import (
	"testing"
	"time"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0B"},
		{1, "1B"},
		{100, "100B"},
		{1023, "1023B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{10240, "10.0KB"},
		{1048576, "1.0MB"},
		{1572864, "1.5MB"},
		{1073741824, "1.0GB"},
		{2147483648, "2.0GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatSize(tt.bytes)
			if result != tt.expected {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, result, tt.expected)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(time.Time{}); got != "never" {
		t.Errorf("FormatTime(zero) = %q, want %q", got, "never")
	}
	if got := FormatTime(time.Now().Add(-30 * time.Second)); got != "just now" {
		t.Errorf("FormatTime(30s ago) = %q, want %q", got, "just now")
	}
	if got := FormatTime(time.Now().Add(-2 * time.Hour)); got != "2 hours ago" {
		t.Errorf("FormatTime(2h ago) = %q, want %q", got, "2 hours ago")
	}
}
