package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/mpetrov/flashdeck/pkg/sm2"
	"gorm.io/gorm"
)

// GetReviewByCard returns the scheduling record paired with a card.
func (s *Store) GetReviewByCard(cardID uint) (Review, error) {
	var review Review
	err := s.gorm.Where("card_id = ?", cardID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Review{}, fmt.Errorf("review for card %d: %w", cardID, ErrNotFound)
		}
		return Review{}, err
	}
	return review, nil
}

// RecordReview applies one SM-2 update for the card and appends the session
// log entry, all in a single transaction. Either the whole four-step update
// and the log row land together, or nothing does.
func (s *Store) RecordReview(cardID uint, rating int, now time.Time) (Review, error) {
	var review Review
	err := s.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", cardID).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("review for card %d: %w", cardID, ErrNotFound)
			}
			return err
		}

		state := sm2.State{
			EaseFactor:  review.EaseFactor,
			Interval:    review.Interval,
			Repetitions: review.Repetitions,
		}
		next, due, err := sm2.Apply(state, rating, now)
		if err != nil {
			return err
		}

		review.EaseFactor = next.EaseFactor
		review.Interval = next.Interval
		review.Repetitions = next.Repetitions
		review.DueDate = due
		reviewedAt := now
		review.LastReview = &reviewedAt

		result := tx.Model(&Review{}).Where("id = ?", review.ID).Updates(map[string]any{
			"ease_factor": review.EaseFactor,
			"interval":    review.Interval,
			"repetitions": review.Repetitions,
			"due_date":    review.DueDate,
			"last_review": review.LastReview,
		})
		if result.Error != nil {
			return result.Error
		}

		entry := SessionLogEntry{CardID: cardID, Rating: rating, ReviewedAt: now}
		return tx.Omit("Card").Create(&entry).Error
	})
	if err != nil {
		return Review{}, err
	}
	return review, nil
}
