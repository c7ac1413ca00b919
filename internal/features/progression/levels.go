// Package progression implements the gamification engine: the level curve,
// session XP awards, streak rules, and the ledger that commits them to a
// user's profile. The pure functions in levels.go, sessionxp.go and streak.go
// carry all the math; the service only loads, applies and persists.
package progression

import "math"

// levelUnit is the width scale of the quadratic level curve: reaching level L
// takes levelUnit*(L-1)^2 lifetime XP.
const levelUnit = 100

// LevelFromXP maps lifetime XP to a level.
//
// Formula: max(1, floor(sqrt(xp/100)) + 1). Monotonic non-decreasing:
// level 1 covers [0,100), level 2 covers [100,400), level 3 [400,900), ...
//
// Lifetime XP is the single source of truth for levels. Any stored level
// value is a cache of this function and is recomputed on every commit.
func LevelFromXP(lifetimeXP int64) int {
	if lifetimeXP <= 0 {
		return 1
	}
	return int(math.Sqrt(float64(lifetimeXP)/levelUnit)) + 1
}

// LevelFloorXP returns the cumulative lifetime XP at which a level begins.
func LevelFloorXP(level int) int64 {
	if level < 1 {
		return 0
	}
	n := int64(level - 1)
	return levelUnit * n * n
}

// LevelCeilXP returns the cumulative lifetime XP at which the next level begins.
func LevelCeilXP(level int) int64 {
	if level < 1 {
		level = 1
	}
	n := int64(level)
	return levelUnit * n * n
}

// ProgressPercent returns how far into the current level the lifetime XP sits,
// clamped to [0,100].
func ProgressPercent(lifetimeXP int64) float64 {
	if lifetimeXP < 0 {
		lifetimeXP = 0
	}
	level := LevelFromXP(lifetimeXP)
	lo := LevelFloorXP(level)
	hi := LevelCeilXP(level)
	if hi <= lo {
		// Degenerate band. Cannot happen for level >= 1, guarded anyway.
		return 100
	}

	pct := float64(lifetimeXP-lo) / float64(hi-lo) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
