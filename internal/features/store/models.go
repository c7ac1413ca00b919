// Package store sells cosmetic items (themes, avatar frames) for spendable
// XP. models.go holds the catalog item shape and the pure purchase rule.
package store

import (
	"time"

	"github.com/google/uuid"

	"studyflow.app/server/internal/common"
	"studyflow.app/server/internal/features/progression"
)

// Rarity tiers, display-only: they color the card in the client and have no
// effect on purchase logic.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Item is one catalog entry. Name doubles as the inventory key.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Rarity      string    `json:"rarity"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ApplyPurchase is the pure purchase rule.
//
// Check order matters and is observable: an owned item reports AlreadyOwned
// even when the balance is also short. On success only the spendable balance
// and the inventory move — lifetime XP, level and streak are never touched
// by a purchase. Both mutations happen on the returned copy together;
// there is no partial state.
func ApplyPurchase(st progression.State, item Item) (progression.State, error) {
	for _, owned := range st.Inventory {
		if owned == item.Name {
			return st, common.ErrItemAlreadyOwned
		}
	}
	if st.SpendableXP < item.Price {
		return st, common.ErrInsufficientXP
	}

	next := st
	next.SpendableXP = st.SpendableXP - item.Price
	next.Inventory = make([]string, 0, len(st.Inventory)+1)
	next.Inventory = append(next.Inventory, st.Inventory...)
	next.Inventory = append(next.Inventory, item.Name)
	return next, nil
}
