package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"studyflow.app/server/internal/common"
	"studyflow.app/server/internal/features/progression"
)

func item(name string, price int64) Item {
	return Item{ID: uuid.New(), Name: name, Price: price, Rarity: RarityCommon}
}

func TestApplyPurchaseDebitsAndAddsItem(t *testing.T) {
	st := progression.State{
		SpendableXP: 500,
		LifetimeXP:  1200,
		Level:       4,
		Streak:      6,
		Inventory:   []string{},
	}

	next, err := ApplyPurchase(st, item("Golden Frame", 300))
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if next.SpendableXP != 200 {
		t.Errorf("spendable = %d, want 200", next.SpendableXP)
	}
	if len(next.Inventory) != 1 || next.Inventory[0] != "Golden Frame" {
		t.Errorf("inventory = %v, want [Golden Frame]", next.Inventory)
	}
	// Purchases never touch lifetime XP, level or streak.
	if next.LifetimeXP != 1200 || next.Level != 4 || next.Streak != 6 {
		t.Errorf("purchase mutated non-currency fields: %+v", next)
	}
}

func TestApplyPurchaseAlreadyOwned(t *testing.T) {
	st := progression.State{
		SpendableXP: 500,
		Inventory:   []string{"Golden Frame"},
	}

	next, err := ApplyPurchase(st, item("Golden Frame", 300))
	if !errors.Is(err, common.ErrItemAlreadyOwned) {
		t.Fatalf("err = %v, want ErrItemAlreadyOwned", err)
	}
	// No double charge: state returned unchanged.
	if next.SpendableXP != 500 || len(next.Inventory) != 1 {
		t.Errorf("failed purchase mutated state: %+v", next)
	}
}

func TestApplyPurchaseInsufficientFunds(t *testing.T) {
	st := progression.State{
		SpendableXP: 100,
		Inventory:   []string{},
	}

	next, err := ApplyPurchase(st, item("Golden Frame", 300))
	if !errors.Is(err, common.ErrInsufficientXP) {
		t.Fatalf("err = %v, want ErrInsufficientXP", err)
	}
	if next.SpendableXP != 100 || len(next.Inventory) != 0 {
		t.Errorf("failed purchase mutated state: %+v", next)
	}
}

func TestApplyPurchaseOwnedWinsOverFunds(t *testing.T) {
	// When the item is owned AND the balance is short, AlreadyOwned is the
	// error reported — the checks have a fixed order.
	st := progression.State{
		SpendableXP: 0,
		Inventory:   []string{"Dark Theme"},
	}
	_, err := ApplyPurchase(st, item("Dark Theme", 300))
	if !errors.Is(err, common.ErrItemAlreadyOwned) {
		t.Fatalf("err = %v, want ErrItemAlreadyOwned", err)
	}
}

func TestApplyPurchaseExactBalance(t *testing.T) {
	st := progression.State{SpendableXP: 300, Inventory: []string{}}
	next, err := ApplyPurchase(st, item("Dark Theme", 300))
	if err != nil {
		t.Fatalf("exact-balance purchase failed: %v", err)
	}
	if next.SpendableXP != 0 {
		t.Errorf("spendable = %d, want 0", next.SpendableXP)
	}
}

func TestApplyPurchaseRepeatedSequence(t *testing.T) {
	// Buy, then retry the same item: deterministic AlreadyOwned, balance
	// deducted exactly once.
	st := progression.State{SpendableXP: 500, Inventory: []string{}}
	it := item("Golden Frame", 300)

	st, err := ApplyPurchase(st, it)
	if err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		var retryErr error
		st, retryErr = ApplyPurchase(st, it)
		if !errors.Is(retryErr, common.ErrItemAlreadyOwned) {
			t.Fatalf("retry %d: err = %v, want ErrItemAlreadyOwned", i, retryErr)
		}
	}
	if st.SpendableXP != 200 {
		t.Errorf("spendable after retries = %d, want 200", st.SpendableXP)
	}
}
