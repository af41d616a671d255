package study_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mpetrov/flashdeck/pkg/db"
	"github.com/mpetrov/flashdeck/pkg/internal/testutil"
	"github.com/mpetrov/flashdeck/pkg/sm2"
	"github.com/mpetrov/flashdeck/pkg/study"
)

type recordedRating struct {
	cardID uint
	rating int
	at     time.Time
}

type fakeRecorder struct {
	recorded []recordedRating
	err      error
}

func (f *fakeRecorder) RecordReview(cardID uint, rating int, now time.Time) (db.Review, error) {
	if f.err != nil {
		return db.Review{}, f.err
	}
	f.recorded = append(f.recorded, recordedRating{cardID: cardID, rating: rating, at: now})
	return db.Review{CardID: cardID}, nil
}

func testCards(ids ...uint) []db.Card {
	cards := make([]db.Card, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, db.Card{ID: id, Front: "front", Back: "back"})
	}
	return cards
}

func TestEmptyQueueCompletesImmediately(t *testing.T) {
	rec := &fakeRecorder{}
	session := study.NewSession(rec, nil, nil)

	if session.State() != study.SessionComplete {
		t.Fatalf("expected SessionComplete, got %v", session.State())
	}
	if session.Current() != nil {
		t.Fatalf("expected no current card")
	}

	// Rate in the complete state is a rejected no-op.
	if err := session.Rate(3); !errors.Is(err, study.ErrNotAwaitingRating) {
		t.Fatalf("expected ErrNotAwaitingRating, got %v", err)
	}
	if session.State() != study.SessionComplete {
		t.Fatalf("state changed by rejected rate: %v", session.State())
	}
	if len(rec.recorded) != 0 {
		t.Fatalf("rejected rate reached the recorder")
	}
}

func TestRevealThenRateAdvances(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := &fakeRecorder{}
	session := study.NewSession(rec, testCards(7, 8), func() time.Time { return now })

	if session.State() != study.AwaitingReveal {
		t.Fatalf("expected AwaitingReveal, got %v", session.State())
	}
	if session.Current().ID != 7 {
		t.Fatalf("expected card 7 first, got %d", session.Current().ID)
	}

	if !session.Reveal() {
		t.Fatalf("reveal rejected in AwaitingReveal")
	}
	if session.State() != study.AwaitingRating {
		t.Fatalf("expected AwaitingRating after reveal, got %v", session.State())
	}

	if err := session.Rate(4); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if session.State() != study.AwaitingReveal {
		t.Fatalf("expected AwaitingReveal for next card, got %v", session.State())
	}
	if session.Current().ID != 8 {
		t.Fatalf("expected card 8 next, got %d", session.Current().ID)
	}

	reviewed, total := session.Progress()
	if reviewed != 1 || total != 2 {
		t.Fatalf("expected progress 1/2, got %d/%d", reviewed, total)
	}
	if len(rec.recorded) != 1 || rec.recorded[0].cardID != 7 || rec.recorded[0].rating != 4 {
		t.Fatalf("unexpected recording %+v", rec.recorded)
	}
	if !rec.recorded[0].at.Equal(now) {
		t.Fatalf("expected rating timestamped %v, got %v", now, rec.recorded[0].at)
	}
}

func TestRatingLastCardCompletes(t *testing.T) {
	rec := &fakeRecorder{}
	session := study.NewSession(rec, testCards(7), nil)

	session.Reveal()
	if err := session.Rate(0); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if session.State() != study.SessionComplete {
		t.Fatalf("expected SessionComplete, got %v", session.State())
	}
	if session.Current() != nil {
		t.Fatalf("expected no current card after completion")
	}
}

func TestRateBeforeRevealIsRejected(t *testing.T) {
	rec := &fakeRecorder{}
	session := study.NewSession(rec, testCards(7), nil)

	if err := session.Rate(3); !errors.Is(err, study.ErrNotAwaitingRating) {
		t.Fatalf("expected ErrNotAwaitingRating, got %v", err)
	}
	if session.State() != study.AwaitingReveal {
		t.Fatalf("state changed by rejected rate: %v", session.State())
	}
	if len(rec.recorded) != 0 {
		t.Fatalf("rejected rate reached the recorder")
	}
}

func TestRevealOnlyWorksOnce(t *testing.T) {
	session := study.NewSession(&fakeRecorder{}, testCards(7), nil)

	if !session.Reveal() {
		t.Fatalf("first reveal rejected")
	}
	if session.Reveal() {
		t.Fatalf("second reveal should be rejected")
	}
	if session.State() != study.AwaitingRating {
		t.Fatalf("expected AwaitingRating, got %v", session.State())
	}
}

func TestInvalidRatingKeepsState(t *testing.T) {
	store := testutil.SetupTestStore(t)
	deck, err := store.CreateDeck("Spanish", "")
	if err != nil {
		t.Fatalf("CreateDeck failed: %v", err)
	}
	card, err := store.CreateCard(deck.ID, "Hola", "Hello", "")
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}

	cards, err := store.GetDueCards(deck.ID, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("GetDueCards failed: %v", err)
	}
	session := study.NewSession(store, cards, nil)
	session.Reveal()

	if err := session.Rate(9); !errors.Is(err, sm2.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if session.State() != study.AwaitingRating {
		t.Fatalf("invalid rating moved state to %v", session.State())
	}
	if session.Current().ID != card.ID {
		t.Fatalf("invalid rating advanced the queue")
	}

	// A valid retry still works and persists.
	if err := session.Rate(5); err != nil {
		t.Fatalf("Rate failed after retry: %v", err)
	}
	review, err := store.GetReviewByCard(card.ID)
	if err != nil {
		t.Fatalf("GetReviewByCard failed: %v", err)
	}
	if review.Repetitions != 1 {
		t.Fatalf("rating not persisted, review %+v", review)
	}
}

func TestAbandonedSessionKeepsCommittedRatings(t *testing.T) {
	store := testutil.SetupTestStore(t)
	deck, err := store.CreateDeck("Spanish", "")
	if err != nil {
		t.Fatalf("CreateDeck failed: %v", err)
	}
	first, err := store.CreateCard(deck.ID, "uno", "one", "")
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}
	second, err := store.CreateCard(deck.ID, "dos", "two", "")
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}

	queryAt := time.Now().Add(time.Minute)
	cards, err := store.GetDueCards(deck.ID, queryAt)
	if err != nil {
		t.Fatalf("GetDueCards failed: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 due cards, got %d", len(cards))
	}

	session := study.NewSession(store, cards, nil)
	session.Reveal()
	if err := session.Rate(5); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	// Session abandoned here; the second card was never rated.

	due, err := store.GetDueCards(deck.ID, queryAt)
	if err != nil {
		t.Fatalf("GetDueCards failed: %v", err)
	}
	if len(due) != 1 || due[0].ID != second.ID {
		t.Fatalf("expected only the unrated card to stay due, got %+v", due)
	}
	if due[0].ID == first.ID {
		t.Fatalf("rated card should no longer be due")
	}
}
