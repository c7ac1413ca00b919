package progression

import "testing"

func TestSessionXPTiers(t *testing.T) {
	tests := []struct {
		minutes float64
		want    int64
	}{
		{10, 100},  // flat rate
		{24, 240},  // just below the first bonus tier
		{25, 300},  // 250 * 1.2
		{44, 528},  // 440 * 1.2
		{45, 675},  // 450 * 1.5
		{60, 900},  // 600 * 1.5
		{1, 10},
		{0, 0},   // contract violation, guarded
		{-15, 0}, // contract violation, guarded
	}

	for _, tt := range tests {
		if got := SessionXP(tt.minutes); got != tt.want {
			t.Errorf("SessionXP(%v) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}

func TestSessionXPFractionalMinutesRoundHalfUp(t *testing.T) {
	// 2.5 min * 10 = 25, no bonus tier, exact.
	if got := SessionXP(2.5); got != 25 {
		t.Errorf("SessionXP(2.5) = %d, want 25", got)
	}
	// 30.25 min * 10 * 1.2 = 363.0
	if got := SessionXP(30.25); got != 363 {
		t.Errorf("SessionXP(30.25) = %d, want 363", got)
	}
	// 0.05 * 10 = 0.5 rounds up to 1.
	if got := SessionXP(0.05); got != 1 {
		t.Errorf("SessionXP(0.05) = %d, want 1", got)
	}
}
