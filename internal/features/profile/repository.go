package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow.app/server/internal/common"
	"studyflow.app/server/internal/features/progression"
)

// Repository reads and updates the presentation side of profiles rows.
// The progression counters on the same row belong to the progression
// repository; this one only ever writes name, avatar and preferences.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the profile repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Get returns the owner-facing profile. The level is recomputed from
// lifetime XP on the way out, same as the progression reads do, so a
// drifted column never reaches a client.
func (r *Repository) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.db.QueryRow(ctx, `
		SELECT id, email, full_name, avatar_url, xp, lifetime_xp, streak,
		       inventory, is_pro, preferences, created_at
		FROM profiles
		WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.XP, &p.LifetimeXP,
		&p.Streak, &p.Inventory, &p.Pro, &p.Preferences, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p.Level = progression.LevelFromXP(p.LifetimeXP)
	if p.Inventory == nil {
		p.Inventory = []string{}
	}
	if len(p.Preferences) == 0 {
		p.Preferences = json.RawMessage(`{}`)
	}
	return &p, nil
}

// GetPublic returns the reduced view of another user's profile.
func (r *Repository) GetPublic(ctx context.Context, userID uuid.UUID) (*PublicProfile, error) {
	var p PublicProfile
	err := r.db.QueryRow(ctx, `
		SELECT id, full_name, avatar_url, lifetime_xp, streak, created_at
		FROM profiles
		WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.FullName, &p.AvatarURL, &p.LifetimeXP, &p.Streak, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get public profile: %w", err)
	}

	p.Level = progression.LevelFromXP(p.LifetimeXP)
	return &p, nil
}

// UpdateName changes the display name.
func (r *Repository) UpdateName(ctx context.Context, userID uuid.UUID, fullName string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles SET full_name = $2, updated_at = NOW()
		WHERE id = $1`,
		userID, fullName,
	)
	if err != nil {
		return fmt.Errorf("failed to update name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// UpdatePreferences replaces the preferences blob wholesale. The client
// owns its shape; the server only requires valid JSON.
func (r *Repository) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs json.RawMessage) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles SET preferences = $2, updated_at = NOW()
		WHERE id = $1`,
		userID, prefs,
	)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ListAvatarURLs returns every avatar URL currently referenced by a
// profile. The uploads cleanup treats everything else as orphaned.
func (r *Repository) ListAvatarURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT avatar_url FROM profiles WHERE avatar_url IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to list avatar urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan avatar url: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// UpdateAvatar swaps the avatar URL and returns the previous one so the
// caller can delete the old file.
func (r *Repository) UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (previous *string, err error) {
	err = r.db.QueryRow(ctx, `
		UPDATE profiles p SET avatar_url = $2, updated_at = NOW()
		FROM (SELECT avatar_url AS old_url FROM profiles WHERE id = $1) prev
		WHERE p.id = $1
		RETURNING prev.old_url`,
		userID, url,
	).Scan(&previous)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	return previous, nil
}
