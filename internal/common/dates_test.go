package common

import (
	"testing"
	"time"
)

func TestCalendarDaysBetween(t *testing.T) {
	utc := time.UTC

	tests := []struct {
		name    string
		later   time.Time
		earlier time.Time
		want    int
	}{
		{
			name:    "same instant",
			later:   time.Date(2025, 3, 10, 12, 0, 0, 0, utc),
			earlier: time.Date(2025, 3, 10, 12, 0, 0, 0, utc),
			want:    0,
		},
		{
			name:    "same day different hours",
			later:   time.Date(2025, 3, 10, 23, 59, 0, 0, utc),
			earlier: time.Date(2025, 3, 10, 0, 1, 0, 0, utc),
			want:    0,
		},
		{
			name:    "adjacent days two minutes apart",
			later:   time.Date(2025, 3, 11, 0, 1, 0, 0, utc),
			earlier: time.Date(2025, 3, 10, 23, 59, 0, 0, utc),
			want:    1,
		},
		{
			name:    "three days apart",
			later:   time.Date(2025, 3, 13, 8, 0, 0, 0, utc),
			earlier: time.Date(2025, 3, 10, 22, 0, 0, 0, utc),
			want:    3,
		},
		{
			name:    "out of order timestamps",
			later:   time.Date(2025, 3, 9, 8, 0, 0, 0, utc),
			earlier: time.Date(2025, 3, 10, 8, 0, 0, 0, utc),
			want:    -1,
		},
		{
			name:    "month boundary",
			later:   time.Date(2025, 4, 1, 1, 0, 0, 0, utc),
			earlier: time.Date(2025, 3, 31, 23, 0, 0, 0, utc),
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalendarDaysBetween(tt.later, tt.earlier, utc)
			if got != tt.want {
				t.Errorf("CalendarDaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalendarDaysBetweenDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2025-03-09 is the 23-hour spring-forward day in New York.
	earlier := time.Date(2025, 3, 8, 20, 0, 0, 0, loc)
	later := time.Date(2025, 3, 9, 20, 0, 0, 0, loc)
	if got := CalendarDaysBetween(later, earlier, loc); got != 1 {
		t.Errorf("spring-forward day: got %d, want 1", got)
	}
}

func TestUTCDayString(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	est := time.FixedZone("EST", -5*60*60)
	ts := time.Date(2025, 6, 1, 23, 30, 0, 0, est)
	if got := UTCDayString(ts); got != "2025-06-02" {
		t.Errorf("UTCDayString() = %q, want %q", got, "2025-06-02")
	}
}
