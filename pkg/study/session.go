// Package study drives one reveal/rate pass over the cards that are due.
// The queue lives only in memory: abandoning a session keeps the ratings
// already committed and nothing else.
package study

import (
	"errors"
	"time"

	"github.com/mpetrov/flashdeck/pkg/db"
)

type State int

const (
	AwaitingReveal State = iota
	AwaitingRating
	SessionComplete
)

func (s State) String() string {
	switch s {
	case AwaitingReveal:
		return "awaiting_reveal"
	case AwaitingRating:
		return "awaiting_rating"
	case SessionComplete:
		return "session_complete"
	default:
		return "unknown"
	}
}

// ErrNotAwaitingRating is returned when Rate is called outside the
// AwaitingRating state. The session state is left untouched.
var ErrNotAwaitingRating = errors.New("no card is awaiting a rating")

// ReviewRecorder persists one rating outcome. *db.Store satisfies it.
type ReviewRecorder interface {
	RecordReview(cardID uint, rating int, now time.Time) (db.Review, error)
}

// Session is a finite state machine over a session-local queue of due
// cards. It is not safe for concurrent use; one session serves one user
// interaction at a time.
type Session struct {
	recorder ReviewRecorder
	queue    []db.Card
	state    State
	total    int
	reviewed int
	now      func() time.Time
}

// NewSession builds a session over the given due cards. A nil now falls
// back to time.Now. An empty queue completes immediately.
func NewSession(recorder ReviewRecorder, cards []db.Card, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		recorder: recorder,
		queue:    append([]db.Card(nil), cards...),
		state:    AwaitingReveal,
		total:    len(cards),
		now:      now,
	}
	if len(s.queue) == 0 {
		s.state = SessionComplete
	}
	return s
}

func (s *Session) State() State {
	return s.state
}

// Current returns the card at the front of the queue, or nil once the
// session is complete.
func (s *Session) Current() *db.Card {
	if s.state == SessionComplete || len(s.queue) == 0 {
		return nil
	}
	return &s.queue[0]
}

// Progress reports how many cards have been rated out of the session total.
func (s *Session) Progress() (reviewed, total int) {
	return s.reviewed, s.total
}

// Reveal flips the current card face up. It only has effect in
// AwaitingReveal; it is purely a display-state change, nothing is
// persisted.
func (s *Session) Reveal() bool {
	if s.state != AwaitingReveal {
		return false
	}
	s.state = AwaitingRating
	return true
}

// Rate records the rating for the current card and advances the queue.
// Outside AwaitingRating it is rejected without touching any state; an
// invalid rating propagates the scheduler's error and also leaves the
// session where it was.
func (s *Session) Rate(rating int) error {
	if s.state != AwaitingRating || len(s.queue) == 0 {
		return ErrNotAwaitingRating
	}

	card := s.queue[0]
	if _, err := s.recorder.RecordReview(card.ID, rating, s.now()); err != nil {
		return err
	}

	s.queue = s.queue[1:]
	s.reviewed++
	if len(s.queue) == 0 {
		s.state = SessionComplete
	} else {
		s.state = AwaitingReveal
	}
	return nil
}
