package teams

import (
	"testing"
	"time"
)

func TestExtractDate(t *testing.T) {
	now := time.Date(2025, time.September, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"iso", "nfl-bal-gb-2025-09-25", "2025-09-25"},
		{"ticker", "KXNFLGAME-25SEP25BALGB", "2025-09-25"},
		{"slash with year", "Ravens vs Packers 9/25/2025", "2025-09-25"},
		{"slash short year", "Ravens vs Packers 9/25/25", "2025-09-25"},
		{"slash no year uses current", "Ravens vs Packers 9/25", "2025-09-25"},
		{"month name", "Ravens at Packers on September 25, 2025", "2025-09-25"},
		{"month name ordinal no year", "Game on Sep 25th", "2025-09-25"},
		{"iso wins over others", "2025-09-25 aka 9/26/2025", "2025-09-25"},
		{"invalid day rejected", "event on 2025-02-30", ""},
		{"none", "Super Bowl champion", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDateAt(tt.text, now); got != tt.want {
				t.Errorf("extractDateAt(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
