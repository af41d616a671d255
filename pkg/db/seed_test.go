package db_test

import (
	"testing"

	"github.com/mpetrov/flashdeck/pkg/db"
	"github.com/mpetrov/flashdeck/pkg/internal/testutil"
)

func TestSeedSampleData(t *testing.T) {
	store := testutil.SetupTestStore(t)

	if err := store.SeedSampleData(); err != nil {
		t.Fatalf("SeedSampleData failed: %v", err)
	}

	decks, err := store.GetAllDecks()
	if err != nil {
		t.Fatalf("GetAllDecks failed: %v", err)
	}
	// Default plus the two sample decks.
	if len(decks) != 3 {
		t.Fatalf("expected 3 decks after seeding, got %d", len(decks))
	}

	cardsBefore, err := store.TotalRows(&db.Card{})
	if err != nil {
		t.Fatalf("TotalRows failed: %v", err)
	}
	if cardsBefore == 0 {
		t.Fatalf("expected sample cards to be created")
	}
	reviews, err := store.TotalRows(&db.Review{})
	if err != nil {
		t.Fatalf("TotalRows failed: %v", err)
	}
	if reviews != cardsBefore {
		t.Fatalf("expected one review per card, got %d reviews for %d cards", reviews, cardsBefore)
	}

	// Seeding again is a no-op for existing decks.
	if err := store.SeedSampleData(); err != nil {
		t.Fatalf("second SeedSampleData failed: %v", err)
	}
	cardsAfter, err := store.TotalRows(&db.Card{})
	if err != nil {
		t.Fatalf("TotalRows failed: %v", err)
	}
	if cardsAfter != cardsBefore {
		t.Fatalf("reseeding added cards: %d -> %d", cardsBefore, cardsAfter)
	}
}
