package progression

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", ts(2025, 5, 5, 14), ts(2025, 5, 5, 0)},
		{"wednesday maps back to monday", ts(2025, 5, 7, 9), ts(2025, 5, 5, 0)},
		{"sunday belongs to the preceding monday", ts(2025, 5, 11, 23), ts(2025, 5, 5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in, time.UTC); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSummarizeWeek(t *testing.T) {
	weekStart := ts(2025, 5, 5, 0) // Monday
	mathID := uuid.New()
	physID := uuid.New()

	sessions := []Session{
		{ID: uuid.New(), SubjectID: &mathID, DurationMinutes: 25, StartedAt: ts(2025, 5, 5, 9)},
		{ID: uuid.New(), SubjectID: &mathID, DurationMinutes: 45, StartedAt: ts(2025, 5, 5, 18)},
		{ID: uuid.New(), SubjectID: &physID, DurationMinutes: 30, StartedAt: ts(2025, 5, 7, 12)},
		{ID: uuid.New(), DurationMinutes: 10, StartedAt: ts(2025, 5, 11, 22)},
	}

	sum := SummarizeWeek(sessions, weekStart, time.UTC)

	if sum.WeekStart != "2025-05-05" {
		t.Errorf("WeekStart = %q, want 2025-05-05", sum.WeekStart)
	}
	if sum.TotalSessions != 4 {
		t.Errorf("TotalSessions = %d, want 4", sum.TotalSessions)
	}
	if sum.TotalMinutes != 110 {
		t.Errorf("TotalMinutes = %v, want 110", sum.TotalMinutes)
	}

	if len(sum.Days) != 7 {
		t.Fatalf("Days length = %d, want 7", len(sum.Days))
	}
	if sum.Days[0].Minutes != 70 || sum.Days[0].Sessions != 2 {
		t.Errorf("monday = %+v, want 70 minutes over 2 sessions", sum.Days[0])
	}
	if sum.Days[2].Minutes != 30 || sum.Days[2].Sessions != 1 {
		t.Errorf("wednesday = %+v, want 30 minutes over 1 session", sum.Days[2])
	}
	if sum.Days[6].Minutes != 10 {
		t.Errorf("sunday minutes = %v, want 10", sum.Days[6].Minutes)
	}
	// Empty days are present with zeros.
	if sum.Days[1].Sessions != 0 || sum.Days[1].Day != "2025-05-06" {
		t.Errorf("tuesday = %+v, want empty bucket for 2025-05-06", sum.Days[1])
	}

	// Per-subject totals in first-seen order; the subject-less session is
	// counted in the totals only.
	if len(sum.Subjects) != 2 {
		t.Fatalf("Subjects length = %d, want 2", len(sum.Subjects))
	}
	if sum.Subjects[0].SubjectID != mathID || sum.Subjects[0].Minutes != 70 {
		t.Errorf("subjects[0] = %+v, want math with 70 minutes", sum.Subjects[0])
	}
	if sum.Subjects[1].SubjectID != physID || sum.Subjects[1].Minutes != 30 {
		t.Errorf("subjects[1] = %+v, want physics with 30 minutes", sum.Subjects[1])
	}
}

func TestSummarizeWeekEmpty(t *testing.T) {
	sum := SummarizeWeek(nil, ts(2025, 5, 5, 0), time.UTC)
	if sum.TotalSessions != 0 || sum.TotalMinutes != 0 {
		t.Errorf("empty week totals = %d/%v, want zeros", sum.TotalSessions, sum.TotalMinutes)
	}
	if len(sum.Days) != 7 {
		t.Errorf("Days length = %d, want 7", len(sum.Days))
	}
}
