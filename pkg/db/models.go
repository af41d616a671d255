package db

import (
	"time"
)

// DefaultDeckName is the deck seeded at first startup. Callers use
// Deck.IsProtected to keep it out of delete flows.
const DefaultDeckName = "Default"

const (
	InitialEaseFactor  = 2.5
	InitialInterval    = 0
	InitialRepetitions = 0
)

type Deck struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Deck) TableName() string {
	return "decks"
}

// IsProtected reports whether this deck must never be deleted. The
// repository itself does not enforce this; callers check before deleting.
func (d Deck) IsProtected() bool {
	return d.Name == DefaultDeckName
}

type Card struct {
	ID        uint   `gorm:"primaryKey"`
	DeckID    uint   `gorm:"index;not null"`
	Deck      Deck   `gorm:"constraint:OnDelete:CASCADE"`
	Front     string `gorm:"not null"`
	Back      string `gorm:"not null"`
	Tags      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Card) TableName() string {
	return "cards"
}

// Review holds the SM-2 scheduling state paired 1:1 with a card. It is
// created together with its card and only ever mutated by RecordReview.
type Review struct {
	ID          uint       `gorm:"primaryKey"`
	CardID      uint       `gorm:"uniqueIndex;not null"`
	Card        Card       `gorm:"constraint:OnDelete:CASCADE"`
	EaseFactor  float64    `gorm:"not null;default:2.5"`
	Interval    int        `gorm:"not null;default:0"`
	Repetitions int        `gorm:"not null;default:0"`
	DueDate     time.Time  `gorm:"index"`
	LastReview  *time.Time
}

func (Review) TableName() string {
	return "reviews"
}

// SessionLogEntry is an append-only audit record of one rating action.
type SessionLogEntry struct {
	ID         uint `gorm:"primaryKey"`
	CardID     uint `gorm:"index;not null"`
	Card       Card `gorm:"constraint:OnDelete:CASCADE"`
	Rating     int  `gorm:"not null"`
	ReviewedAt time.Time
}

func (SessionLogEntry) TableName() string {
	return "session_log"
}
