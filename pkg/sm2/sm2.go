// Package sm2 implements the SuperMemo-2 spaced-repetition formula. It is
// pure: callers hand in the current scheduling state and get the next one
// back, persistence lives elsewhere.
package sm2

import (
	"errors"
	"fmt"
	"time"
)

const (
	// RatingMin and RatingMax bound recall quality: 0 is a total
	// blackout, 5 a perfect recall.
	RatingMin = 0
	RatingMax = 5

	// SuccessThreshold separates a lapse from a successful recall.
	SuccessThreshold = 3

	InitialEase = 2.5
	EaseFloor   = 1.3
)

// ErrInvalidRating is returned for ratings outside [RatingMin, RatingMax].
var ErrInvalidRating = errors.New("rating must be between 0 and 5")

// State is the scheduling state carried by each card's review record.
type State struct {
	EaseFactor  float64
	Interval    int // days
	Repetitions int // consecutive successes since the last lapse
}

// NewState returns the state assigned to a freshly created card.
func NewState() State {
	return State{EaseFactor: InitialEase, Interval: 0, Repetitions: 0}
}

// Apply runs one SM-2 update for the given rating and returns the next
// state along with the new due date (now + interval days).
//
// The interval growth on the third and later success is trunc(interval *
// ease), truncated toward zero rather than rounded. Rounding instead would
// silently shift every long-term schedule, so the truncation is kept
// exactly.
func Apply(s State, rating int, now time.Time) (State, time.Time, error) {
	if rating < RatingMin || rating > RatingMax {
		return State{}, time.Time{}, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}

	next := s
	if rating < SuccessThreshold {
		// Lapse: the streak and the interval both reset.
		next.Repetitions = 0
		next.Interval = 1
	} else {
		switch next.Repetitions {
		case 0:
			next.Interval = 1
		case 1:
			next.Interval = 6
		default:
			next.Interval = int(float64(next.Interval) * next.EaseFactor)
		}
		next.Repetitions++
	}

	// Ease moves on every rating, lapse or not, floored at 1.3.
	q := float64(5 - rating)
	next.EaseFactor = s.EaseFactor + (0.1 - q*(0.08+q*0.02))
	if next.EaseFactor < EaseFloor {
		next.EaseFactor = EaseFloor
	}

	due := now.AddDate(0, 0, next.Interval)
	return next, due, nil
}

// IsLapse reports whether the rating resets the repetition streak.
func IsLapse(rating int) bool {
	return rating < SuccessThreshold
}
