// Package progression — repository.go reads and writes the ledger fields on
// the profiles table and the study_sessions history. Every mutation runs in
// a database transaction so the five ledger fields can never be committed
// partially.
package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides ledger persistence on top of the shared pgx pool.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a progression repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetState loads the ledger state of a user.
//
// The "last session" reference for streak math is the most recent session by
// timestamp (MAX(started_at)), not the most recently inserted row, so
// backfilled sessions cannot shift the streak baseline.
func (r *Repository) GetState(ctx context.Context, userID uuid.UUID) (State, error) {
	query := `
		SELECT p.xp, p.lifetime_xp, p.streak, p.inventory,
		       (SELECT MAX(s.started_at) FROM study_sessions s WHERE s.user_id = p.id)
		FROM profiles p
		WHERE p.id = $1
	`
	var st State
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&st.SpendableXP, &st.LifetimeXP, &st.Streak, &st.Inventory, &st.LastSessionAt,
	)
	if err != nil {
		return State{}, fmt.Errorf("failed to load progression state: %w", err)
	}

	// Repair clearly corrupt values at the boundary so the ledger math never
	// re-checks them.
	if st.SpendableXP < 0 {
		st.SpendableXP = 0
	}
	if st.LifetimeXP < 0 {
		st.LifetimeXP = 0
	}
	if st.Streak < 0 {
		st.Streak = 0
	}
	if st.Inventory == nil {
		st.Inventory = []string{}
	}
	// The stored level is a cache; the recompute here means a drifted value
	// never survives a load.
	st.Level = LevelFromXP(st.LifetimeXP)
	return st, nil
}

// CommitSession persists the post-session ledger state and appends the
// session row atomically.
func (r *Repository) CommitSession(ctx context.Context, userID uuid.UUID, st State, sess Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE profiles
		SET xp = $2, lifetime_xp = $3, level = $4, streak = $5, updated_at = NOW()
		WHERE id = $1
	`, userID, st.SpendableXP, st.LifetimeXP, st.Level, st.Streak)
	if err != nil {
		return fmt.Errorf("failed to update profile ledger fields: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO study_sessions (id, user_id, subject_id, duration_minutes, started_at, completed)
		VALUES ($1, $2, $3, $4, $5, TRUE)
	`, sess.ID, userID, sess.SubjectID, sess.DurationMinutes, sess.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to append session: %w", err)
	}

	return tx.Commit(ctx)
}

// ListSessions returns the most recent sessions, newest first.
func (r *Repository) ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]Session, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, subject_id, duration_minutes, started_at
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.SubjectID, &s.DurationMinutes, &s.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// SessionsSince returns completed sessions with started_at >= since, used by
// the weekly summary.
func (r *Repository) SessionsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Session, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, subject_id, duration_minutes, started_at
		FROM study_sessions
		WHERE user_id = $1 AND started_at >= $2
		ORDER BY started_at DESC
	`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.SubjectID, &s.DurationMinutes, &s.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ResetAll wipes every user-owned record and zeroes the ledger, in one
// transaction. Triggered only by the explicit full-reset operation.
func (r *Repository) ResetAll(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		`DELETE FROM chat_messages WHERE user_id = $1`,
		`DELETE FROM study_sessions WHERE user_id = $1`,
		`DELETE FROM tasks WHERE user_id = $1`,
		`DELETE FROM subjects WHERE user_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, userID); err != nil {
			return fmt.Errorf("failed to wipe user data: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE profiles
		SET xp = 0, lifetime_xp = 0, level = 1, streak = 0,
		    inventory = '{}', avatar_url = NULL,
		    daily_message_count = 0, updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to zero profile: %w", err)
	}

	return tx.Commit(ctx)
}
