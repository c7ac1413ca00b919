// Package store — service.go validates purchases against the catalog.
package store

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/features/progression"
)

// Service owns catalog reads and the purchase flow.
type Service struct {
	repo *Repository
}

// NewService creates the store service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Catalog returns all purchasable items.
func (s *Service) Catalog(ctx context.Context) ([]Item, error) {
	return s.repo.ListItems(ctx)
}

// Purchase buys one item for the user. Returns the updated ledger state on
// success; domain errors (AlreadyOwned, InsufficientXP) come back typed so
// the client can tell "invalid purchase" apart from "storage trouble".
func (s *Service) Purchase(ctx context.Context, userID, itemID uuid.UUID) (progression.State, *Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return progression.State{}, nil, err
	}

	state, err := s.repo.Purchase(ctx, userID, *item)
	if err != nil {
		return state, item, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"item":    item.Name,
		"price":   item.Price,
	}).Info("Item purchased")
	return state, item, nil
}
