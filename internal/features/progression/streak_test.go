package progression

import (
	"testing"
	"time"
)

func ts(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	now := ts(2025, 5, 10, 14)

	tests := []struct {
		name    string
		last    *time.Time
		current int
		want    int
	}{
		{
			name:    "first ever session",
			last:    nil,
			current: 0,
			want:    1,
		},
		{
			name:    "continued from yesterday",
			last:    ptr(ts(2025, 5, 9, 20)),
			current: 3,
			want:    4,
		},
		{
			name:    "same day repeat does not stack",
			last:    ptr(ts(2025, 5, 10, 8)),
			current: 4,
			want:    4,
		},
		{
			name:    "broken after three days",
			last:    ptr(ts(2025, 5, 7, 9)),
			current: 5,
			want:    1,
		},
		{
			name:    "late night to early morning still counts as adjacent days",
			last:    ptr(ts(2025, 5, 9, 23)),
			current: 1,
			want:    2,
		},
		{
			name:    "out of order timestamp leaves streak alone",
			last:    ptr(ts(2025, 5, 12, 9)),
			current: 6,
			want:    6,
		},
		{
			name:    "negative stored streak is repaired before use",
			last:    nil,
			current: -2,
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStreak(now, tt.last, tt.current, time.UTC)
			if got != tt.want {
				t.Errorf("NextStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }
