// Package progression — streak.go holds the consecutive-day streak rule.
package progression

import (
	"time"

	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/common"
)

// NextStreak computes the streak value after a session completed at now.
//
// lastSession is the timestamp of the most recent session *before* the one
// being credited (nil for a first-ever session). The comparison uses calendar
// days in loc, not elapsed hours:
//
//   - no prior session → 1
//   - same calendar day → unchanged (repeat sessions don't stack)
//   - exactly one day later → streak + 1
//   - a gap of two or more days → back to 1
//
// A negative day difference means clock skew or backfilled data; the streak
// is left unchanged — never decremented, never a crash.
func NextStreak(now time.Time, lastSession *time.Time, current int, loc *time.Location) int {
	if current < 0 {
		current = 0
	}
	if lastSession == nil {
		return 1
	}

	diffDays := common.CalendarDaysBetween(now, *lastSession, loc)
	switch {
	case diffDays < 0:
		log.WithFields(log.Fields{
			"diff_days":    diffDays,
			"last_session": lastSession.Format(time.RFC3339),
		}).Debug("Out-of-order session timestamp, streak unchanged")
		return current
	case diffDays == 0:
		return current
	case diffDays == 1:
		return current + 1
	default:
		return 1
	}
}
