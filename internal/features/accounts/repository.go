package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow.app/server/internal/common"
)

// Repository persists accounts. Accounts live on the same profiles row as
// the progression state; creating an account creates the whole profile
// with zeroed counters.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the accounts repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a fresh profile row for the new account.
func (r *Repository) Create(ctx context.Context, email, fullName, passwordHash string) (*Account, error) {
	acc := &Account{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO profiles (id, email, full_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		acc.ID, acc.Email, acc.FullName, acc.PasswordHash,
	).Scan(&acc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return acc, nil
}

// GetByEmail looks an account up for login.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	var acc Account
	err := r.db.QueryRow(ctx, `
		SELECT id, email, full_name, password_hash, created_at
		FROM profiles
		WHERE email = $1`,
		email,
	).Scan(&acc.ID, &acc.Email, &acc.FullName, &acc.PasswordHash, &acc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &acc, nil
}

// GetByID looks an account up for token refresh.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	var acc Account
	err := r.db.QueryRow(ctx, `
		SELECT id, email, full_name, password_hash, created_at
		FROM profiles
		WHERE id = $1`,
		id,
	).Scan(&acc.ID, &acc.Email, &acc.FullName, &acc.PasswordHash, &acc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	return &acc, nil
}
