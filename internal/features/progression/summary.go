// Package progression — summary.go aggregates sessions into the weekly
// activity numbers the analytics dashboard renders. Weeks start on Monday.
package progression

import (
	"time"

	"github.com/google/uuid"

	"studyflow.app/server/internal/common"
)

// Summary is one week of study activity.
type Summary struct {
	WeekStart     string         `json:"week_start"`
	TotalSessions int            `json:"total_sessions"`
	TotalMinutes  float64        `json:"total_minutes"`
	Days          []DayActivity  `json:"days"`
	Subjects      []SubjectTotal `json:"subjects"`
}

// DayActivity is the per-day bucket of a Summary. Days with no sessions
// are present with zeros so the chart always has seven bars.
type DayActivity struct {
	Day      string  `json:"day"`
	Minutes  float64 `json:"minutes"`
	Sessions int     `json:"sessions"`
}

// SubjectTotal is the time spent on one subject this week.
type SubjectTotal struct {
	SubjectID uuid.UUID `json:"subject_id"`
	Minutes   float64   `json:"minutes"`
}

// WeekStart returns Monday 00:00 of the week containing t, in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := common.DayStart(t, loc)
	// Go counts Sunday as 0; shift so Monday is the zero offset.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// SummarizeWeek buckets sessions into the seven days starting at weekStart.
// A session outside the window counts toward the totals but lands in no
// day bucket.
func SummarizeWeek(sessions []Session, weekStart time.Time, loc *time.Location) Summary {
	sum := Summary{
		WeekStart: weekStart.Format("2006-01-02"),
		Days:      make([]DayActivity, 7),
	}
	for i := range sum.Days {
		sum.Days[i].Day = weekStart.AddDate(0, 0, i).Format("2006-01-02")
	}

	bySubject := make(map[uuid.UUID]float64)
	var order []uuid.UUID
	for _, s := range sessions {
		sum.TotalSessions++
		sum.TotalMinutes += s.DurationMinutes

		idx := common.CalendarDaysBetween(s.StartedAt, weekStart, loc)
		if idx >= 0 && idx < 7 {
			sum.Days[idx].Minutes += s.DurationMinutes
			sum.Days[idx].Sessions++
		}

		if s.SubjectID != nil {
			if _, seen := bySubject[*s.SubjectID]; !seen {
				order = append(order, *s.SubjectID)
			}
			bySubject[*s.SubjectID] += s.DurationMinutes
		}
	}

	for _, id := range order {
		sum.Subjects = append(sum.Subjects, SubjectTotal{SubjectID: id, Minutes: bySubject[id]})
	}
	return sum
}
