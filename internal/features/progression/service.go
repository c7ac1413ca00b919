// Package progression — service.go is the ledger: it loads the state,
// applies the pure session transition and commits the result.
package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/common"
)

// Scoreboard mirrors lifetime XP into the leaderboard cache.
// Satisfied by redisdb.Client; mirroring is best-effort and never blocks or
// fails a session commit.
type Scoreboard interface {
	SetLifetimeXP(ctx context.Context, userID string, lifetimeXP int64) error
	RemoveUser(ctx context.Context, userID string) error
}

// Service owns the progression ledger rules.
type Service struct {
	repo  *Repository
	board Scoreboard
	loc   *time.Location
}

// NewService creates the progression service. loc is the timezone used for
// streak calendar-day comparisons.
func NewService(repo *Repository, board Scoreboard, loc *time.Location) *Service {
	return &Service{repo: repo, board: board, loc: loc}
}

// SessionInput is the client payload for a completed focus session.
type SessionInput struct {
	DurationMinutes float64    `json:"duration_minutes"`
	StartedAt       time.Time  `json:"started_at"`
	SubjectID       *uuid.UUID `json:"subject_id,omitempty"`
}

// SessionResult is what a session commit returns to the client.
//
// Persisted is false when the database write failed after the ledger math
// already ran: the award shown to the user stands and the durable copy
// reconciles on next load. Responsiveness over strict consistency.
type SessionResult struct {
	Session   Session `json:"session"`
	State     State   `json:"state"`
	Award     Award   `json:"award"`
	Persisted bool    `json:"persisted"`
}

// RecordSession credits a completed session to the user's ledger.
func (s *Service) RecordSession(ctx context.Context, userID uuid.UUID, in SessionInput) (*SessionResult, error) {
	if in.DurationMinutes <= 0 {
		return nil, common.ErrInvalidDuration
	}

	startedAt := in.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	sess := Session{
		ID:              uuid.New(),
		SubjectID:       in.SubjectID,
		DurationMinutes: in.DurationMinutes,
		StartedAt:       startedAt,
	}

	state, err := s.repo.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The streak reads the session most recent before this one; the pure step
	// runs before the new session row exists anywhere.
	next, award := state.ApplySession(sess, time.Now(), s.loc)

	result := &SessionResult{Session: sess, State: next, Award: award, Persisted: true}

	if err := s.repo.CommitSession(ctx, userID, next, sess); err != nil {
		// Soft failure: the award was already computed and is reported to the
		// user; the durable state catches up on the next load.
		log.WithError(err).WithField("user_id", userID).Error("Session commit failed, returning optimistic state")
		result.Persisted = false
		return result, nil
	}

	s.mirrorScore(userID, next.LifetimeXP)

	log.WithFields(log.Fields{
		"user_id":   userID,
		"xp_gained": award.XPGained,
		"level":     award.NewLevel,
		"streak":    award.NewStreak,
	}).Debug("Session credited")

	return result, nil
}

// Overview returns the ledger state plus the derived level-curve numbers the
// dashboard renders.
type Overview struct {
	State           State   `json:"state"`
	ProgressPercent float64 `json:"progress_percent"`
	LevelFloorXP    int64   `json:"level_floor_xp"`
	LevelCeilXP     int64   `json:"level_ceil_xp"`
}

// GetOverview loads the current ledger state with progress math attached.
func (s *Service) GetOverview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	state, err := s.repo.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Overview{
		State:           state,
		ProgressPercent: ProgressPercent(state.LifetimeXP),
		LevelFloorXP:    LevelFloorXP(state.Level),
		LevelCeilXP:     LevelCeilXP(state.Level),
	}, nil
}

// WeeklySummary aggregates the current Monday-based week of sessions for
// the analytics dashboard.
func (s *Service) WeeklySummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	start := WeekStart(time.Now(), s.loc)
	sessions, err := s.repo.SessionsSince(ctx, userID, start)
	if err != nil {
		return nil, err
	}
	sum := SummarizeWeek(sessions, start, s.loc)
	return &sum, nil
}

// History returns the most recent sessions.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]Session, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.ListSessions(ctx, userID, limit)
}

// Reset performs the explicit full data wipe: sessions, tasks, subjects and
// chat history are deleted and every ledger field returns to its zero value.
func (s *Service) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.ResetAll(ctx, userID); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.board.RemoveUser(ctx, userID.String()); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to drop leaderboard entry")
		}
	}()

	log.WithField("user_id", userID).Info("User data reset")
	return nil
}

// mirrorScore pushes the new lifetime XP to the leaderboard cache without
// blocking the request. Errors are logged only; Postgres stays authoritative
// and the nightly rebuild heals any gap.
func (s *Service) mirrorScore(userID uuid.UUID, lifetimeXP int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.board.SetLifetimeXP(ctx, userID.String(), lifetimeXP); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Leaderboard mirror failed")
		}
	}()
}
