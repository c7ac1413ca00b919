package progression

import "testing"

func TestLevelFromXPBoundaries(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{899, 3},
		{900, 4},
		{10000, 11},
		{-50, 1}, // corrupt input clamps to the floor level
	}

	for _, tt := range tests {
		if got := LevelFromXP(tt.xp); got != tt.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelFromXPMonotonic(t *testing.T) {
	prev := LevelFromXP(0)
	for xp := int64(1); xp <= 5000; xp++ {
		cur := LevelFromXP(xp)
		if cur < prev {
			t.Fatalf("level decreased: LevelFromXP(%d)=%d < LevelFromXP(%d)=%d", xp, cur, xp-1, prev)
		}
		prev = cur
	}
}

func TestLevelFloorAndCeil(t *testing.T) {
	for level := 1; level <= 20; level++ {
		lo := LevelFloorXP(level)
		hi := LevelCeilXP(level)
		if hi <= lo {
			t.Fatalf("level %d: ceil %d <= floor %d", level, hi, lo)
		}
		// The floor XP of a level must actually map back to that level.
		if got := LevelFromXP(lo); got != level {
			t.Errorf("LevelFromXP(LevelFloorXP(%d)) = %d, want %d", level, got, level)
		}
		// One XP short of the ceiling must still be within the level.
		if got := LevelFromXP(hi - 1); got != level {
			t.Errorf("LevelFromXP(LevelCeilXP(%d)-1) = %d, want %d", level, got, level)
		}
	}
}

func TestProgressPercentBounds(t *testing.T) {
	for xp := int64(0); xp <= 5000; xp += 7 {
		pct := ProgressPercent(xp)
		if pct < 0 || pct > 100 {
			t.Fatalf("ProgressPercent(%d) = %f out of [0,100]", xp, pct)
		}
	}
}

func TestProgressPercentAtLevelEdges(t *testing.T) {
	for level := 1; level <= 10; level++ {
		if pct := ProgressPercent(LevelFloorXP(level)); pct != 0 {
			t.Errorf("progress at floor of level %d = %f, want 0", level, pct)
		}
		// Just under the ceiling the fraction approaches but never reaches 100.
		pct := ProgressPercent(LevelCeilXP(level) - 1)
		if pct <= 90 || pct >= 100 {
			t.Errorf("progress just below ceil of level %d = %f, want in (90,100)", level, pct)
		}
	}
}
