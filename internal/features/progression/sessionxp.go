// Package progression — sessionxp.go converts a completed focus session into
// an XP award. Longer sessions earn a multiplier on top of the flat rate.
package progression

import "math"

// XP earned per focused minute before any bonus.
const xpPerMinute = 10

// Bonus tiers. A 45-minute session is worth 1.5x, a 25-minute one 1.2x.
const (
	bonusTierMinutes    = 25
	bonusTierFactor     = 1.2
	bigBonusTierMinutes = 45
	bigBonusTierFactor  = 1.5
)

// SessionXP returns the XP award for a session of the given length.
//
//	SessionXP(10) → 100
//	SessionXP(24) → 240   (no bonus)
//	SessionXP(25) → 300   (x1.2)
//	SessionXP(45) → 675   (x1.5)
//
// A zero or negative duration is a caller contract violation; the guard
// returns 0 rather than producing a negative award.
func SessionXP(durationMinutes float64) int64 {
	if durationMinutes <= 0 {
		return 0
	}

	base := durationMinutes * xpPerMinute
	multiplier := 1.0
	switch {
	case durationMinutes >= bigBonusTierMinutes:
		multiplier = bigBonusTierFactor
	case durationMinutes >= bonusTierMinutes:
		multiplier = bonusTierFactor
	}

	// Round half away from zero, matching the display math in the web client.
	return int64(math.Round(base * multiplier))
}
