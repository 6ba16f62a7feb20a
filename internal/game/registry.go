package game

import "fmt"

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"Rock":     Rock,
	"Paper":    Paper,
	"Scissors": Scissors,
	"Fire":     Fire,
	"Water":    Water,
	"Thunder":  Thunder,
}

// CatalogOrder is the display order of the catalog.
var CatalogOrder = []string{"Rock", "Paper", "Scissors", "Fire", "Water", "Thunder"}

// LookupCard looks up a card by name and returns a new instance.
// Panics if the card is not found.
func LookupCard(name string) *Card {
	card, err := FindCard(name)
	if err != nil {
		panic(err.Error())
	}
	return card
}

// FindCard is LookupCard for untrusted input.
func FindCard(name string) (*Card, error) {
	ctor, ok := CardRegistry[name]
	if !ok {
		return nil, fmt.Errorf("card not found in registry: %q", name)
	}
	return ctor(), nil
}

// Catalog returns one instance of every card in display order.
func Catalog() []*Card {
	cards := make([]*Card, 0, len(CatalogOrder))
	for _, name := range CatalogOrder {
		cards = append(cards, LookupCard(name))
	}
	return cards
}
