package game

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// StandardDeckName is the name of the built-in deck.
const StandardDeckName = "Standard"

// StandardDeckEntry is the fixed starting composition: 24 cards.
var StandardDeckEntry = DeckEntry{
	Name: StandardDeckName,
	Cards: []CardEntry{
		{Name: "Rock", Count: 5},
		{Name: "Paper", Count: 5},
		{Name: "Scissors", Count: 5},
		{Name: "Fire", Count: 3},
		{Name: "Water", Count: 3},
		{Name: "Thunder", Count: 3},
	},
}

// StandardDeck builds a fresh, unshuffled copy of the standard deck.
func StandardDeck() []*Card {
	cards, _ := StandardDeckEntry.Build()
	return cards
}

// Build expands the entry's counts into card instances.
func (d DeckEntry) Build() ([]*Card, error) {
	var cards []*Card
	for _, entry := range d.Cards {
		if entry.Count < 0 {
			return nil, fmt.Errorf("deck %q: negative count for %s", d.Name, entry.Name)
		}
		for i := 0; i < entry.Count; i++ {
			card, err := FindCard(entry.Name)
			if err != nil {
				return nil, fmt.Errorf("deck %q: %w", d.Name, err)
			}
			cards = append(cards, card)
		}
	}
	if len(cards) < HandSize {
		return nil, fmt.Errorf("deck %q has %d cards, need at least %d", d.Name, len(cards), HandSize)
	}
	return cards, nil
}

// ReadDeckFile reads and parses a YAML deck file.
func ReadDeckFile(path string) (DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckFile{}, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name → card slice.
func ParseDeckFile(path string) (map[string][]*Card, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return nil, err
	}

	decks := make(map[string][]*Card)
	for _, deck := range df.Decks {
		cards, err := deck.Build()
		if err != nil {
			return nil, err
		}
		decks[deck.Name] = cards
	}

	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
// An empty path selects the built-in standard deck.
func DeckByNumber(path string, n int) (string, []*Card, error) {
	if path == "" {
		return StandardDeckName, StandardDeck(), nil
	}

	df, err := ReadDeckFile(path)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}

	deck := df.Decks[n-1]
	cards, err := deck.Build()
	if err != nil {
		return "", nil, err
	}
	return deck.Name, cards, nil
}

// Shuffle randomizes cards in place with an unbiased Fisher-Yates pass.
func Shuffle(rng *rand.Rand, cards []*Card) []*Card {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}
