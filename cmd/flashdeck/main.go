package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mpetrov/flashdeck/pkg/config"
	"github.com/mpetrov/flashdeck/pkg/db"
	"github.com/mpetrov/flashdeck/pkg/logger"
	"github.com/mpetrov/flashdeck/pkg/study"
)

const usage = `Usage: flashdeck [flags] <command> [args]

Commands:
  decks                              list decks with card and due counts
  deck-add <name> [description]      create a deck
  deck-rm <id>                       delete a deck and all its cards
  cards <deck-id>                    list cards in a deck
  card-add <deck-id> <front> <back> [tags]
                                     add a card to a deck
  card-rm <id>                       delete a card
  study [deck-id]                    review due cards (all decks if omitted)
  stats                              show dashboard totals
  seed                               load the sample decks

Flags:
`

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to the JSON config file")
	dbPath := flag.String("db", "", "Path to the SQLite database file (overrides config)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	if err := logger.Configure(logger.Options{
		Level: cfg.Logging.Level,
		File:  cfg.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	store, err := db.Open(cfg.Storage.Path, db.Options{GormLogLevel: cfg.Logging.GormLevel})
	if err != nil {
		logger.Error("failed to initialize database", "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := run(store, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".flashdeck", "config.json")
}

func run(store *db.Store, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("no command given")
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "decks":
		return listDecks(store)
	case "deck-add":
		if len(rest) < 1 {
			return errors.New("deck-add needs a name")
		}
		description := ""
		if len(rest) > 1 {
			description = strings.Join(rest[1:], " ")
		}
		deck, err := store.CreateDeck(rest[0], description)
		if err != nil {
			return err
		}
		fmt.Printf("created deck %d: %s\n", deck.ID, deck.Name)
		return nil
	case "deck-rm":
		return removeDeck(store, rest)
	case "cards":
		if len(rest) != 1 {
			return errors.New("cards needs a deck id")
		}
		return listCards(store, rest[0])
	case "card-add":
		return addCard(store, rest)
	case "card-rm":
		if len(rest) != 1 {
			return errors.New("card-rm needs a card id")
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		return store.DeleteCard(id)
	case "study":
		deckID := uint(0)
		if len(rest) > 0 {
			id, err := parseID(rest[0])
			if err != nil {
				return err
			}
			deckID = id
		}
		return runStudy(store, deckID)
	case "stats":
		counts, err := store.GetCounts(time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("decks: %d  cards: %d  due now: %d\n", counts.Decks, counts.Cards, counts.Due)
		return nil
	case "seed":
		return store.SeedSampleData()
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func listDecks(store *db.Store) error {
	stats, err := store.GetDeckStats(time.Now())
	if err != nil {
		return err
	}
	for _, s := range stats {
		fmt.Printf("%4d  %-30s %4d cards  %4d due\n", s.Deck.ID, s.Deck.Name, s.CardCount, s.DueCount)
	}
	return nil
}

func removeDeck(store *db.Store, args []string) error {
	if len(args) != 1 {
		return errors.New("deck-rm needs a deck id")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	deck, err := store.GetDeck(id)
	if err != nil {
		return err
	}
	if deck.IsProtected() {
		return fmt.Errorf("deck %q cannot be deleted", deck.Name)
	}
	if err := store.DeleteDeck(id); err != nil {
		return err
	}
	fmt.Printf("deleted deck %q\n", deck.Name)
	return nil
}

func listCards(store *db.Store, arg string) error {
	deckID, err := parseID(arg)
	if err != nil {
		return err
	}
	cards, err := store.GetCardsByDeck(deckID)
	if err != nil {
		return err
	}
	for _, card := range cards {
		fmt.Printf("%4d  %-40s -> %s\n", card.ID, card.Front, card.Back)
	}
	return nil
}

func addCard(store *db.Store, args []string) error {
	if len(args) < 3 {
		return errors.New("card-add needs a deck id, front and back")
	}
	deckID, err := parseID(args[0])
	if err != nil {
		return err
	}
	tags := ""
	if len(args) > 3 {
		tags = strings.Join(args[3:], " ")
	}
	card, err := store.CreateCard(deckID, args[1], args[2], tags)
	if err != nil {
		return err
	}
	fmt.Printf("created card %d\n", card.ID)
	return nil
}

// runStudy walks the reveal/rate loop over stdin until the queue is empty
// or the user quits. Quitting mid-way loses nothing: rated cards are
// already persisted and the rest stay due.
func runStudy(store *db.Store, deckID uint) error {
	cards, err := store.GetDueCards(deckID, time.Now())
	if err != nil {
		return err
	}
	session := study.NewSession(store, cards, nil)
	if session.State() == study.SessionComplete {
		fmt.Println("No cards due. Great work!")
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	for session.State() != study.SessionComplete {
		card := session.Current()
		reviewed, total := session.Progress()
		fmt.Printf("\nCard %d of %d\n\nQ: %s\n\n[enter] reveal, [q] quit: ", reviewed+1, total, card.Front)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "q" {
			break
		}
		session.Reveal()

		fmt.Printf("\nA: %s\n\nRate recall 0 (blackout) - 5 (perfect), [q] quit: ", card.Back)
		for session.State() == study.AwaitingRating {
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			answer := strings.TrimSpace(line)
			if answer == "q" {
				return nil
			}
			rating, convErr := strconv.Atoi(answer)
			if convErr != nil {
				fmt.Print("Please enter a number 0-5: ")
				continue
			}
			if rateErr := session.Rate(rating); rateErr != nil {
				fmt.Printf("%v, try again: ", rateErr)
			}
		}
	}

	reviewed, total := session.Progress()
	fmt.Printf("\nSession done: %d of %d cards reviewed.\n", reviewed, total)
	return nil
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return uint(id), nil
}
