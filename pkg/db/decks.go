package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type deckInput struct {
	Name string `validate:"required"`
}

// CreateDeck inserts a new deck. Names are unique: a collision fails with
// ErrDuplicateName before any row is written.
func (s *Store) CreateDeck(name, description string) (Deck, error) {
	if err := checkInput(deckInput{Name: name}); err != nil {
		return Deck{}, err
	}

	deck := Deck{Name: name, Description: description}
	err := s.gorm.Transaction(func(tx *gorm.DB) error {
		taken, err := deckNameTaken(tx, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}
		return tx.Create(&deck).Error
	})
	if err != nil {
		return Deck{}, err
	}
	return deck, nil
}

func (s *Store) GetDeck(id uint) (Deck, error) {
	var deck Deck
	if err := s.gorm.First(&deck, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Deck{}, fmt.Errorf("deck %d: %w", id, ErrNotFound)
		}
		return Deck{}, err
	}
	return deck, nil
}

func (s *Store) GetAllDecks() ([]Deck, error) {
	var decks []Deck
	if err := s.gorm.Order("name ASC").Find(&decks).Error; err != nil {
		return nil, err
	}
	return decks, nil
}

// UpdateDeck persists name/description changes and refreshes updated_at.
func (s *Store) UpdateDeck(deck *Deck) error {
	if deck == nil || deck.ID == 0 {
		return fmt.Errorf("deck: %w", ErrNotFound)
	}
	if err := checkInput(deckInput{Name: deck.Name}); err != nil {
		return err
	}

	return s.gorm.Transaction(func(tx *gorm.DB) error {
		taken, err := deckNameTaken(tx, deck.Name, deck.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateName
		}
		deck.UpdatedAt = time.Now()
		result := tx.Model(&Deck{}).Where("id = ?", deck.ID).Updates(map[string]any{
			"name":        deck.Name,
			"description": deck.Description,
			"updated_at":  deck.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("deck %d: %w", deck.ID, ErrNotFound)
		}
		return nil
	})
}

// DeleteDeck removes the deck and everything it owns in one transaction.
// The cascade is explicit so it holds even if the engine-level foreign keys
// were created without enforcement. Protection of the "Default" deck is the
// caller's policy, not the repository's.
func (s *Store) DeleteDeck(id uint) error {
	return s.gorm.Transaction(func(tx *gorm.DB) error {
		var deck Deck
		if err := tx.First(&deck, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("deck %d: %w", id, ErrNotFound)
			}
			return err
		}

		cardIDs := tx.Model(&Card{}).Select("id").Where("deck_id = ?", id)
		if err := tx.Where("card_id IN (?)", cardIDs).Delete(&SessionLogEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id IN (?)", cardIDs).Delete(&Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deck_id = ?", id).Delete(&Card{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Deck{}, id).Error
	})
}

// CardCount returns the number of cards currently owned by the deck.
func (s *Store) CardCount(deckID uint) (int64, error) {
	var count int64
	err := s.gorm.Model(&Card{}).Where("deck_id = ?", deckID).Count(&count).Error
	return count, err
}

// DeckStats summarizes one deck for listing screens.
type DeckStats struct {
	Deck      Deck
	CardCount int64
	DueCount  int64
}

// GetDeckStats returns all decks ordered by name with card and due counts.
func (s *Store) GetDeckStats(now time.Time) ([]DeckStats, error) {
	decks, err := s.GetAllDecks()
	if err != nil {
		return nil, err
	}
	stats := make([]DeckStats, 0, len(decks))
	for _, deck := range decks {
		cards, err := s.CardCount(deck.ID)
		if err != nil {
			return nil, err
		}
		var due int64
		err = s.gorm.Model(&Card{}).
			Joins("JOIN reviews ON reviews.card_id = cards.id").
			Where("cards.deck_id = ? AND reviews.due_date <= ?", deck.ID, now).
			Count(&due).Error
		if err != nil {
			return nil, err
		}
		stats = append(stats, DeckStats{Deck: deck, CardCount: cards, DueCount: due})
	}
	return stats, nil
}

// Counts holds the dashboard totals.
type Counts struct {
	Decks int64
	Cards int64
	Due   int64
}

func (s *Store) GetCounts(now time.Time) (Counts, error) {
	var counts Counts
	if err := s.gorm.Model(&Deck{}).Count(&counts.Decks).Error; err != nil {
		return counts, err
	}
	if err := s.gorm.Model(&Card{}).Count(&counts.Cards).Error; err != nil {
		return counts, err
	}
	err := s.gorm.Model(&Card{}).
		Joins("JOIN reviews ON reviews.card_id = cards.id").
		Where("reviews.due_date <= ?", now).
		Count(&counts.Due).Error
	return counts, err
}

func deckNameTaken(tx *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	query := tx.Model(&Deck{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
