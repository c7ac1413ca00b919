// Package store — repository.go reads the catalog and executes purchases.
// A purchase locks the profile row (FOR UPDATE) so two rapid clicks cannot
// both pass the balance check.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow.app/server/internal/common"
	"studyflow.app/server/internal/features/progression"
)

// Repository provides catalog reads and the purchase transaction.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a store repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListItems returns the whole catalog, cheapest first.
func (r *Repository) ListItems(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price, rarity, image_url, created_at
		FROM store_items
		ORDER BY price ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list store items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Rarity, &it.ImageURL, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan store item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetItem looks up one catalog entry.
func (r *Repository) GetItem(ctx context.Context, itemID uuid.UUID) (*Item, error) {
	var it Item
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, price, rarity, image_url, created_at
		FROM store_items
		WHERE id = $1
	`, itemID).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Rarity, &it.ImageURL, &it.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load store item: %w", err)
	}
	return &it, nil
}

// Purchase debits the item price and adds its name to the inventory in one
// transaction. The balance and inventory are read under a row lock, the pure
// rule decides, and both fields are written back together — money deducted
// without the item added (or vice versa) cannot be produced.
func (r *Repository) Purchase(ctx context.Context, userID uuid.UUID, item Item) (progression.State, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return progression.State{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var st progression.State
	err = tx.QueryRow(ctx, `
		SELECT xp, lifetime_xp, streak, inventory
		FROM profiles
		WHERE id = $1
		FOR UPDATE
	`, userID).Scan(&st.SpendableXP, &st.LifetimeXP, &st.Streak, &st.Inventory)
	if errors.Is(err, pgx.ErrNoRows) {
		return progression.State{}, common.ErrNotFound
	}
	if err != nil {
		return progression.State{}, fmt.Errorf("failed to lock profile: %w", err)
	}
	if st.Inventory == nil {
		st.Inventory = []string{}
	}
	st.Level = progression.LevelFromXP(st.LifetimeXP)

	next, err := ApplyPurchase(st, item)
	if err != nil {
		// AlreadyOwned / InsufficientXP: nothing mutated, tx rolls back empty.
		return st, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE profiles
		SET xp = $2, inventory = $3, updated_at = NOW()
		WHERE id = $1
	`, userID, next.SpendableXP, next.Inventory)
	if err != nil {
		return st, fmt.Errorf("failed to commit purchase: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return st, fmt.Errorf("failed to commit purchase: %w", err)
	}
	return next, nil
}
