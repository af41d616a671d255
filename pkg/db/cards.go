package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type cardInput struct {
	Front string `validate:"required"`
	Back  string `validate:"required"`
}

// CreateCard inserts a card together with its paired review record. The two
// rows are written in one transaction: both exist or neither does. The
// review starts with the SM-2 defaults and is due immediately.
func (s *Store) CreateCard(deckID uint, front, back, tags string) (Card, error) {
	if err := checkInput(cardInput{Front: front, Back: back}); err != nil {
		return Card{}, err
	}

	card := Card{DeckID: deckID, Front: front, Back: back, Tags: tags}
	err := s.gorm.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Deck{}).Where("id = ?", deckID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("deck %d: %w", deckID, ErrDeckNotFound)
		}
		if err := tx.Omit("Deck").Create(&card).Error; err != nil {
			return err
		}
		review := Review{
			CardID:      card.ID,
			EaseFactor:  InitialEaseFactor,
			Interval:    InitialInterval,
			Repetitions: InitialRepetitions,
			DueDate:     time.Now(),
		}
		return tx.Omit("Card").Create(&review).Error
	})
	if err != nil {
		return Card{}, err
	}
	return card, nil
}

func (s *Store) GetCard(id uint) (Card, error) {
	var card Card
	if err := s.gorm.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Card{}, fmt.Errorf("card %d: %w", id, ErrNotFound)
		}
		return Card{}, err
	}
	return card, nil
}

// GetCardsByDeck lists a deck's cards, most recently created first.
func (s *Store) GetCardsByDeck(deckID uint) ([]Card, error) {
	var cards []Card
	err := s.gorm.
		Where("deck_id = ?", deckID).
		Order("created_at DESC, id DESC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// GetDueCards returns cards whose review is due at or before now, most
// overdue first. A deckID of 0 spans all decks. The ascending due order
// keeps session processing deterministic and fair.
func (s *Store) GetDueCards(deckID uint, now time.Time) ([]Card, error) {
	query := s.gorm.Model(&Card{}).
		Select("cards.*").
		Joins("JOIN reviews ON reviews.card_id = cards.id").
		Where("reviews.due_date <= ?", now)
	if deckID != 0 {
		query = query.Where("cards.deck_id = ?", deckID)
	}
	var cards []Card
	if err := query.Order("reviews.due_date ASC, cards.id ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// UpdateCard persists front/back/tags/deck changes and refreshes updated_at.
func (s *Store) UpdateCard(card *Card) error {
	if card == nil || card.ID == 0 {
		return fmt.Errorf("card: %w", ErrNotFound)
	}
	if err := checkInput(cardInput{Front: card.Front, Back: card.Back}); err != nil {
		return err
	}

	return s.gorm.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Deck{}).Where("id = ?", card.DeckID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("deck %d: %w", card.DeckID, ErrDeckNotFound)
		}
		card.UpdatedAt = time.Now()
		result := tx.Model(&Card{}).Where("id = ?", card.ID).Updates(map[string]any{
			"deck_id":    card.DeckID,
			"front":      card.Front,
			"back":       card.Back,
			"tags":       card.Tags,
			"updated_at": card.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("card %d: %w", card.ID, ErrNotFound)
		}
		return nil
	})
}

// DeleteCard removes the card, its review and its session log rows in one
// transaction.
func (s *Store) DeleteCard(id uint) error {
	return s.gorm.Transaction(func(tx *gorm.DB) error {
		var card Card
		if err := tx.First(&card, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("card %d: %w", id, ErrNotFound)
			}
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&SessionLogEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Card{}, id).Error
	})
}
