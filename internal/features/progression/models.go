// Package progression — models.go describes the ledger state and the pure
// transition applied on every completed session.
package progression

import (
	"time"

	"github.com/google/uuid"
)

// State is the progression ledger of one user.
//
// LifetimeXP is cumulative and never decreases; it alone determines Level.
// SpendableXP is the currency balance: credited together with lifetime XP on
// sessions, debited by store purchases, so SpendableXP <= LifetimeXP always.
type State struct {
	SpendableXP   int64      `json:"xp"`
	LifetimeXP    int64      `json:"lifetime_xp"`
	Level         int        `json:"level"`
	Streak        int        `json:"streak"`
	Inventory     []string   `json:"inventory"`
	LastSessionAt *time.Time `json:"last_session_at,omitempty"`
}

// Session is one completed focus session.
type Session struct {
	ID              uuid.UUID  `json:"id"`
	SubjectID       *uuid.UUID `json:"subject_id,omitempty"` // back-reference only, no ownership
	DurationMinutes float64    `json:"duration_minutes"`
	StartedAt       time.Time  `json:"started_at"`
}

// Award summarizes what one session earned.
type Award struct {
	XPGained  int64 `json:"xp_gained"`
	NewLevel  int   `json:"new_level"`
	LeveledUp bool  `json:"leveled_up"`
	NewStreak int   `json:"new_streak"`
}

// ApplySession credits a completed session and returns the successor state.
//
// All five fields move together as one logical transaction: spendable XP and
// lifetime XP grow by the award, the level is recomputed from the new
// lifetime XP, the streak is evaluated against the session most recent
// *before* this one, and LastSessionAt advances. A partial update (XP changed
// but level stale) cannot be produced from here.
func (s State) ApplySession(sess Session, now time.Time, loc *time.Location) (State, Award) {
	gained := SessionXP(sess.DurationMinutes)

	next := s
	next.SpendableXP = s.SpendableXP + gained
	next.LifetimeXP = s.LifetimeXP + gained
	next.Level = LevelFromXP(next.LifetimeXP)
	next.Streak = NextStreak(now, s.LastSessionAt, s.Streak, loc)
	startedAt := sess.StartedAt
	next.LastSessionAt = &startedAt

	return next, Award{
		XPGained:  gained,
		NewLevel:  next.Level,
		LeveledUp: next.Level > s.Level,
		NewStreak: next.Streak,
	}
}

// Reset returns the zeroed state of a full data wipe: no XP, no streak, empty
// inventory, level back to LevelFromXP(0) == 1.
func (s State) Reset() State {
	return State{
		Level:     LevelFromXP(0),
		Inventory: []string{},
	}
}
