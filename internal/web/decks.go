package web

import "github.com/peterkuimelis/rpsx/internal/game"

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Cards  []string `json:"cards"`
}

// readDecks loads the deck file and checks that every deck can be built.
func readDecks(path string) (game.DeckFile, error) {
	df, err := game.ReadDeckFile(path)
	if err != nil {
		return game.DeckFile{}, err
	}
	for _, d := range df.Decks {
		if _, err := d.Build(); err != nil {
			return game.DeckFile{}, err
		}
	}
	return df, nil
}

func deckInfos(df game.DeckFile) []DeckInfo {
	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		di := DeckInfo{
			Number: i + 1,
			Name:   d.Name,
		}
		// Unique card names for display
		seen := make(map[string]bool)
		for _, c := range d.Cards {
			di.Size += c.Count
			if !seen[c.Name] {
				di.Cards = append(di.Cards, c.Name)
				seen[c.Name] = true
			}
		}
		decks = append(decks, di)
	}
	return decks
}
