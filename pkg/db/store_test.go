package db

import (
	"path/filepath"
	"testing"
)

func TestWithForeignKeys(t *testing.T) {
	cases := map[string]string{
		"cards.db":                       "cards.db?_foreign_keys=on",
		"file:mem?mode=memory":           "file:mem?mode=memory&_foreign_keys=on",
		"cards.db?_foreign_keys=off":     "cards.db?_foreign_keys=off",
		"/home/user/.flashdeck/cards.db": "/home/user/.flashdeck/cards.db?_foreign_keys=on",
	}
	for input, want := range cases {
		if got := withForeignKeys(input); got != want {
			t.Fatalf("withForeignKeys(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cards.db")

	store, err := Open(path, Options{GormLogLevel: "silent"})
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	deck, err := store.CreateDeck("Persistent", "")
	if err != nil {
		t.Fatalf("CreateDeck failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Second startup reuses the schema and does not reseed.
	store, err = Open(path, Options{GormLogLevel: "silent"})
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer store.Close()

	decks, err := store.GetAllDecks()
	if err != nil {
		t.Fatalf("GetAllDecks failed: %v", err)
	}
	if len(decks) != 2 {
		t.Fatalf("expected Default + Persistent after reopen, got %d decks", len(decks))
	}
	if _, err := store.GetDeck(deck.ID); err != nil {
		t.Fatalf("deck lost across reopen: %v", err)
	}
}
