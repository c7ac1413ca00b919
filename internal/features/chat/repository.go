// Package chat — repository.go persists chat turns and the daily usage
// counters, which live on the profiles row.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow.app/server/internal/common"
)

// Repository provides chat persistence.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a chat repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetUsage loads the daily gate state from the profile row.
func (r *Repository) GetUsage(ctx context.Context, userID uuid.UUID) (Usage, error) {
	var (
		u         Usage
		countDate *time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT daily_message_count, daily_count_date, is_pro
		FROM profiles
		WHERE id = $1
	`, userID).Scan(&u.MessageCount, &countDate, &u.Pro)
	if errors.Is(err, pgx.ErrNoRows) {
		return Usage{}, common.ErrNotFound
	}
	if err != nil {
		return Usage{}, fmt.Errorf("failed to load daily usage: %w", err)
	}

	// Repair at the boundary: a missing date means "some past day", which
	// the next rollover resolves; a negative count resets to zero.
	if countDate != nil {
		u.CountDate = common.UTCDayString(*countDate)
	}
	if u.MessageCount < 0 {
		u.MessageCount = 0
	}
	return u, nil
}

// SaveUsage writes the gate counters back. Only the two usage fields move.
func (r *Repository) SaveUsage(ctx context.Context, userID uuid.UUID, u Usage) error {
	_, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET daily_message_count = $2, daily_count_date = $3, updated_at = NOW()
		WHERE id = $1
	`, userID, u.MessageCount, u.CountDate)
	if err != nil {
		return fmt.Errorf("failed to save daily usage: %w", err)
	}
	return nil
}

// InsertMessage appends one chat turn.
func (r *Repository) InsertMessage(ctx context.Context, userID uuid.UUID, msg Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO chat_messages (id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, msg.ID, userID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// ListMessages returns the whole conversation, oldest first.
func (r *Repository) ListMessages(ctx context.Context, userID uuid.UUID) ([]Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, role, content, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// DeleteMessages wipes the conversation.
func (r *Repository) DeleteMessages(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM chat_messages WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
