package chat

import (
	"testing"
	"time"
)

const quota = 10

func onDay(day string, hour int) time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func TestGateQuotaExhaustion(t *testing.T) {
	now := onDay("2025-06-01", 9)
	u := Usage{CountDate: "2025-06-01"}

	// Ten sends pass, the eleventh check fails.
	for i := 0; i < quota; i++ {
		var allowed bool
		u, allowed = u.CanSend(now, quota)
		if !allowed {
			t.Fatalf("send %d unexpectedly blocked", i+1)
		}
		u = u.RecordSent(now)
	}

	u, allowed := u.CanSend(now, quota)
	if allowed {
		t.Fatalf("11th send allowed with count %d", u.MessageCount)
	}
	if u.MessageCount != quota {
		t.Errorf("count = %d, want %d", u.MessageCount, quota)
	}
}

func TestGateDayRollover(t *testing.T) {
	// Quota exhausted yesterday; a plain check today resets the counter
	// before evaluating.
	u := Usage{MessageCount: 10, CountDate: "2025-05-31"}
	now := onDay("2025-06-01", 0)

	next, allowed := u.CanSend(now, quota)
	if !allowed {
		t.Fatal("rollover day should allow sending")
	}
	if next.MessageCount != 0 {
		t.Errorf("count after rollover = %d, want 0", next.MessageCount)
	}
	if next.CountDate != "2025-06-01" {
		t.Errorf("count date = %q, want 2025-06-01", next.CountDate)
	}
}

func TestGateRolloverHappensOnCheckNotOnlySend(t *testing.T) {
	u := Usage{MessageCount: 7, CountDate: "2025-05-31"}
	next, _ := u.CanSend(onDay("2025-06-01", 12), quota)
	// The check itself cleared the stale counter.
	if next.MessageCount != 0 || next.CountDate != "2025-06-01" {
		t.Errorf("stale state survived a check: %+v", next)
	}
}

func TestGateProBypass(t *testing.T) {
	// Pro accounts are allowed at any count and nothing mutates.
	for _, count := range []int{0, 5, 10, 9999} {
		u := Usage{MessageCount: count, CountDate: "2020-01-01", Pro: true}
		next, allowed := u.CanSend(onDay("2025-06-01", 10), quota)
		if !allowed {
			t.Fatalf("pro blocked at count %d", count)
		}
		if next != u {
			t.Errorf("pro check mutated state: %+v -> %+v", u, next)
		}
		// RecordSent is also a no-op for pro.
		if got := u.RecordSent(onDay("2025-06-01", 10)); got != u {
			t.Errorf("pro RecordSent mutated state: %+v", got)
		}
	}
}

func TestGateRecordSentAcrossMidnight(t *testing.T) {
	// Check passes at 23:59, send lands at 00:00: RecordSent re-applies the
	// rollover so the count starts fresh on the new day.
	u := Usage{MessageCount: 9, CountDate: "2025-05-31"}
	u, allowed := u.CanSend(onDay("2025-05-31", 23), quota)
	if !allowed {
		t.Fatal("expected 10th send to be allowed")
	}

	next := u.RecordSent(onDay("2025-06-01", 0))
	if next.MessageCount != 1 || next.CountDate != "2025-06-01" {
		t.Errorf("midnight send recorded as %+v, want count 1 on 2025-06-01", next)
	}
}

func TestGateRemaining(t *testing.T) {
	u := Usage{MessageCount: 7, CountDate: "2025-06-01"}
	if got := u.Remaining(onDay("2025-06-01", 8), quota); got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}
	// Corrupt overcount clamps to zero rather than going negative.
	u.MessageCount = 15
	if got := u.Remaining(onDay("2025-06-01", 8), quota); got != 0 {
		t.Errorf("remaining = %d, want 0", got)
	}
}
