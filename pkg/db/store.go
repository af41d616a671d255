package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mpetrov/flashdeck/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Store owns the database handle. It is constructed once at startup and
// passed into everything that needs persistence; there is no package-level
// instance.
type Store struct {
	gorm *gorm.DB
}

type Options struct {
	// GormLogLevel controls query logging: silent, error, warn or info.
	GormLogLevel string
}

// Open opens (creating if necessary) the SQLite database at path, applies
// the schema and seeds the "Default" deck when the decks table is empty.
// Safe to call on every startup. Any error here is fatal to the caller.
func Open(path string, opts Options) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	gormLogger, logErr := newGormLogger(opts.GormLogLevel)
	if logErr != nil {
		logger.Warn("invalid gorm log level", "value", opts.GormLogLevel, "error", logErr)
	}

	dsn := withForeignKeys(path)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{gorm: gdb}
	if err := store.migrate(); err != nil {
		return nil, err
	}
	if err := store.seedDefaultDeck(); err != nil {
		return nil, err
	}
	return store, nil
}

// NewStore wraps an already-open gorm handle, applying schema and seed. Used
// by tests that open their own in-memory database.
func NewStore(gdb *gorm.DB) (*Store, error) {
	store := &Store{gorm: gdb}
	if err := store.migrate(); err != nil {
		return nil, err
	}
	if err := store.seedDefaultDeck(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) migrate() error {
	if err := s.gorm.AutoMigrate(&Deck{}, &Card{}, &Review{}, &SessionLogEntry{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (s *Store) seedDefaultDeck() error {
	var count int64
	if err := s.gorm.Model(&Deck{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count decks: %w", err)
	}
	if count > 0 {
		return nil
	}
	deck := Deck{Name: DefaultDeckName, Description: "Default deck for new cards"}
	if err := s.gorm.Create(&deck).Error; err != nil {
		return fmt.Errorf("failed to seed default deck: %w", err)
	}
	logger.Info("seeded default deck", "deck_id", deck.ID)
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withForeignKeys(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
