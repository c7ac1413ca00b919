// Package chat — gate.go is the daily usage gate for the AI tutor.
// Non-pro accounts get a fixed number of user-authored turns per UTC
// calendar day; the counter resets lazily the first time a new day is
// observed, whether that observation is a check or a send.
package chat

import (
	"time"

	"studyflow.app/server/internal/common"
)

// Usage is the per-user daily gate state.
type Usage struct {
	MessageCount int    `json:"message_count"`
	CountDate    string `json:"count_date"` // UTC calendar date, YYYY-MM-DD
	Pro          bool   `json:"is_pro"`
}

// rollOver resets the counter when the UTC day changed since CountDate.
// The bool reports whether the state mutated (and needs persisting).
func (u Usage) rollOver(now time.Time) (Usage, bool) {
	today := common.UTCDayString(now)
	if u.CountDate == today {
		return u, false
	}
	u.MessageCount = 0
	u.CountDate = today
	return u, true
}

// CanSend runs the gate check.
//
// Pro accounts bypass the gate entirely — allowed, nothing mutated, the
// counter is not even rolled over. For everyone else the day rollover is
// applied as part of the check (a check on a new day clears stale state even
// if the user never sends), then the quota is compared.
func (u Usage) CanSend(now time.Time, quota int) (next Usage, allowed bool) {
	if u.Pro {
		return u, true
	}
	next, _ = u.rollOver(now)
	return next, next.MessageCount < quota
}

// RecordSent counts one user-authored turn. Model replies are never
// recorded. Re-applies the rollover first, same rule as CanSend, to stay
// correct across a midnight boundary between check and send.
func (u Usage) RecordSent(now time.Time) Usage {
	if u.Pro {
		return u
	}
	next, _ := u.rollOver(now)
	next.MessageCount++
	return next
}

// Remaining returns how many turns are left today (unlimited is reported as
// the full quota for pro accounts).
func (u Usage) Remaining(now time.Time, quota int) int {
	if u.Pro {
		return quota
	}
	rolled, _ := u.rollOver(now)
	left := quota - rolled.MessageCount
	if left < 0 {
		return 0
	}
	return left
}
