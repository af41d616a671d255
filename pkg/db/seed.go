package db

import (
	"errors"

	"github.com/mpetrov/flashdeck/pkg/logger"
)

type sampleCard struct {
	front, back, tags string
}

type sampleDeck struct {
	name, description string
	cards             []sampleCard
}

var sampleDecks = []sampleDeck{
	{
		name:        "Spanish Vocabulary",
		description: "Basic Spanish words and phrases",
		cards: []sampleCard{
			{"Hola", "Hello", "greetings, basic"},
			{"Adiós", "Goodbye", "greetings, basic"},
			{"Por favor", "Please", "politeness, basic"},
			{"Gracias", "Thank you", "politeness, basic"},
			{"¿Cómo estás?", "How are you?", "questions, basic"},
			{"Me llamo...", "My name is...", "introductions, basic"},
			{"¿Dónde está...?", "Where is...?", "questions, travel"},
			{"El agua", "The water", "nouns, food"},
			{"La comida", "The food", "nouns, food"},
			{"Buenas noches", "Good night", "greetings, time"},
		},
	},
	{
		name:        "Go Programming",
		description: "Go concepts and idioms",
		cards: []sampleCard{
			{"What does a nil map read return?", "The zero value of the element type; writing to a nil map panics", "maps, basics"},
			{"What is the zero value of a slice?", "nil; len and cap are 0 and append works on it", "slices, basics"},
			{"How do you stop a goroutine?", "You can't from outside; signal it via a channel or context cancellation", "concurrency"},
			{"What does defer evaluate eagerly?", "The function value and its arguments; the call itself runs at return", "functions"},
			{"When does a type satisfy an interface?", "Implicitly, whenever it has the required method set", "interfaces"},
			{"What is the comma-ok idiom?", "v, ok := m[k] — ok reports presence, avoiding ambiguity with zero values", "maps, idioms"},
			{"How are errors conventionally handled?", "Returned as the last value and checked explicitly; wrap with %w for errors.Is/As", "errors"},
			{"What does 'go vet' do?", "Reports likely mistakes the compiler accepts, like bad printf verbs", "tooling"},
		},
	},
}

// SeedSampleData creates the sample decks and their cards. A deck whose
// name already exists is skipped entirely, so running it twice adds
// nothing.
func (s *Store) SeedSampleData() error {
	for _, sample := range sampleDecks {
		deck, err := s.CreateDeck(sample.name, sample.description)
		if err != nil {
			if errors.Is(err, ErrDuplicateName) {
				logger.Debug("sample deck already present", "name", sample.name)
				continue
			}
			return err
		}
		for _, card := range sample.cards {
			if _, err := s.CreateCard(deck.ID, card.front, card.back, card.tags); err != nil {
				return err
			}
		}
		logger.Info("seeded sample deck", "name", sample.name, "cards", len(sample.cards))
	}
	return nil
}
