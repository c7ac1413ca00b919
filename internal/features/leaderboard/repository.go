package leaderboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow.app/server/internal/features/progression"
)

// Repository reads leaderboard data from Postgres. Redis is the fast
// path; these queries back the fallback and the nightly rebuild.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the leaderboard repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// TopByLifetimeXP returns the highest-ranked users straight from
// Postgres, already hydrated.
func (r *Repository) TopByLifetimeXP(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, full_name, avatar_url, lifetime_xp, streak
		FROM profiles
		WHERE lifetime_xp > 0
		ORDER BY lifetime_xp DESC, created_at ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.FullName, &e.AvatarURL, &e.LifetimeXP, &e.Streak); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		e.Rank = len(entries) + 1
		e.Level = progression.LevelFromXP(e.LifetimeXP)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Hydrate fills display fields for an ordered list of user IDs, keeping
// the given order. IDs without a profile row are dropped.
func (r *Repository) Hydrate(ctx context.Context, ids []uuid.UUID) ([]Entry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, full_name, avatar_url, lifetime_xp, streak
		FROM profiles
		WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate leaderboard: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]Entry, len(ids))
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.FullName, &e.AvatarURL, &e.LifetimeXP, &e.Streak); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		e.Level = progression.LevelFromXP(e.LifetimeXP)
		byID[e.UserID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			e.Rank = len(entries) + 1
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// AllLifetimeXP returns every user's score for the nightly Redis rebuild.
func (r *Repository) AllLifetimeXP(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, lifetime_xp FROM profiles WHERE lifetime_xp > 0`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lifetime scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]int64)
	for rows.Next() {
		var id uuid.UUID
		var xp int64
		if err := rows.Scan(&id, &xp); err != nil {
			return nil, fmt.Errorf("failed to scan lifetime score: %w", err)
		}
		scores[id.String()] = xp
	}
	return scores, rows.Err()
}
