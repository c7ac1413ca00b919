package progression

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestApplySessionCommitsAllFieldsTogether(t *testing.T) {
	yesterday := ts(2025, 5, 9, 18)
	state := State{
		SpendableXP:   50,
		LifetimeXP:    350, // level 2, 50 XP short of level 3
		Level:         2,
		Streak:        3,
		Inventory:     []string{"Dark Theme"},
		LastSessionAt: &yesterday,
	}

	now := ts(2025, 5, 10, 10)
	sess := Session{ID: uuid.New(), DurationMinutes: 10, StartedAt: now}

	next, award := state.ApplySession(sess, now, time.UTC)

	if award.XPGained != 100 {
		t.Fatalf("award = %d, want 100", award.XPGained)
	}
	if next.SpendableXP != 150 {
		t.Errorf("spendable = %d, want 150", next.SpendableXP)
	}
	if next.LifetimeXP != 450 {
		t.Errorf("lifetime = %d, want 450", next.LifetimeXP)
	}
	if next.Level != 3 || !award.LeveledUp {
		t.Errorf("level = %d (leveledUp=%v), want 3 with level-up", next.Level, award.LeveledUp)
	}
	if next.Streak != 4 {
		t.Errorf("streak = %d, want 4 (continued from yesterday)", next.Streak)
	}
	if next.LastSessionAt == nil || !next.LastSessionAt.Equal(now) {
		t.Errorf("last session not advanced to %v", now)
	}
	// Inventory is untouched by sessions.
	if len(next.Inventory) != 1 || next.Inventory[0] != "Dark Theme" {
		t.Errorf("inventory changed: %v", next.Inventory)
	}
}

func TestApplySessionSameDayTwiceIncrementsStreakOnce(t *testing.T) {
	state := State{Inventory: []string{}, Level: 1}
	day := ts(2025, 5, 10, 9)

	// First session of the day: no prior history, streak becomes 1.
	first := Session{ID: uuid.New(), DurationMinutes: 25, StartedAt: day}
	state, _ = state.ApplySession(first, day, time.UTC)
	if state.Streak != 1 {
		t.Fatalf("after first session streak = %d, want 1", state.Streak)
	}

	// Second session the same day: streak unchanged.
	later := day.Add(6 * time.Hour)
	second := Session{ID: uuid.New(), DurationMinutes: 25, StartedAt: later}
	state, award := state.ApplySession(second, later, time.UTC)
	if state.Streak != 1 || award.NewStreak != 1 {
		t.Errorf("after same-day repeat streak = %d, want 1", state.Streak)
	}
}

func TestApplySessionStreakBreak(t *testing.T) {
	old := ts(2025, 5, 7, 12)
	state := State{Streak: 5, LastSessionAt: &old, Inventory: []string{}}

	now := ts(2025, 5, 10, 12)
	sess := Session{ID: uuid.New(), DurationMinutes: 30, StartedAt: now}
	next, _ := state.ApplySession(sess, now, time.UTC)

	if next.Streak != 1 {
		t.Errorf("streak after 3-day gap = %d, want 1", next.Streak)
	}
}

func TestLifetimeXPNeverDecreases(t *testing.T) {
	state := State{Inventory: []string{}}
	now := ts(2025, 5, 10, 8)

	prevLifetime := state.LifetimeXP
	for i := 0; i < 20; i++ {
		sess := Session{ID: uuid.New(), DurationMinutes: float64(5 + i*3), StartedAt: now}
		state, _ = state.ApplySession(sess, now, time.UTC)
		if state.LifetimeXP < prevLifetime {
			t.Fatalf("lifetime XP decreased: %d -> %d", prevLifetime, state.LifetimeXP)
		}
		if state.Level != LevelFromXP(state.LifetimeXP) {
			t.Fatalf("stored level %d drifted from curve %d", state.Level, LevelFromXP(state.LifetimeXP))
		}
		prevLifetime = state.LifetimeXP
		now = now.Add(time.Hour)
	}
}

func TestResetZeroesEverything(t *testing.T) {
	last := ts(2025, 5, 9, 12)
	state := State{
		SpendableXP:   700,
		LifetimeXP:    1200,
		Level:         4,
		Streak:        9,
		Inventory:     []string{"Golden Frame", "Dark Theme"},
		LastSessionAt: &last,
	}

	got := state.Reset()
	if got.SpendableXP != 0 || got.LifetimeXP != 0 || got.Streak != 0 {
		t.Errorf("reset left XP/streak behind: %+v", got)
	}
	if got.Level != 1 {
		t.Errorf("reset level = %d, want 1", got.Level)
	}
	if len(got.Inventory) != 0 {
		t.Errorf("reset inventory not empty: %v", got.Inventory)
	}
	if got.LastSessionAt != nil {
		t.Errorf("reset kept last session timestamp")
	}
}
