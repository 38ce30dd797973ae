package model

import (
	"testing"
	"time"
)

func TestItemExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		expiry   string
		expected bool
	}{
		{"2025-06-15 11:59:59", true},
		{"2025-06-15 12:00:00", false},
		{"2025-06-15 12:00:01", false},
		{"2024-12-31 23:59:59", true},
		{"2099-01-01 00:00:00", false},
	}

	for _, tt := range tests {
		item := Item{ExpiryDate: tt.expiry}
		if got := item.Expired(now); got != tt.expected {
			t.Errorf("Expired(%q at %s) = %v, want %v", tt.expiry, now.Format(TimeFormat), got, tt.expected)
		}
	}
}
