package game

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/peterkuimelis/rpsx/internal/log"
)

// ScriptedStrategist plays a predefined list of AI moves, picked by name from
// the AI's hand. Once the script runs out it falls back to the greedy choice.
type ScriptedStrategist struct {
	t     *testing.T
	moves [][2]string
	pos   int
}

func NewScriptedStrategist(t *testing.T) *ScriptedStrategist {
	return &ScriptedStrategist{t: t}
}

func (s *ScriptedStrategist) AddMove(base, power string) *ScriptedStrategist {
	s.moves = append(s.moves, [2]string{base, power})
	return s
}

func (s *ScriptedStrategist) ChooseMove(m *Match) Move {
	if s.pos >= len(s.moves) {
		return GreedyStrategist{}.ChooseMove(m)
	}
	next := s.moves[s.pos]
	s.pos++
	return pickMove(s.t, m.AI, next[0], next[1])
}

// pickMove builds a move from the exact hand instances named.
func pickMove(t *testing.T, c *Combatant, base, power string) Move {
	t.Helper()
	var mv Move
	for _, card := range c.Hand {
		if mv.Base == nil && card.Name.String() == base {
			mv.Base = card
		}
	}
	if mv.Base == nil {
		t.Fatalf("%s not in hand %v", base, cardNames(c.Hand))
	}
	if power == "" {
		return mv
	}
	for _, card := range c.Hand {
		if mv.Power == nil && card.Name.String() == power {
			mv.Power = card
		}
	}
	if mv.Power == nil {
		t.Fatalf("%s not in hand %v", power, cardNames(c.Hand))
	}
	return mv
}

// cards builds card instances from names.
func cards(names ...string) []*Card {
	result := make([]*Card, 0, len(names))
	for _, n := range names {
		result = append(result, LookupCard(n))
	}
	return result
}

// stackedDeck returns a deck whose index 0 is drawn first.
func stackedDeck(names ...string) []*Card {
	deck := cards(names...)
	for i, j := 0, len(deck)-1; i < j; i, j = i+1, j-1 {
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// deckNames returns the standard deck minus the excluded cards, with top
// drawn first. The result is in snapshot order (top card last).
func deckNames(t *testing.T, exclude []string, top ...string) []string {
	t.Helper()
	remaining := cardNames(StandardDeck())
	take := func(name string) {
		for i, n := range remaining {
			if n == name {
				remaining = append(remaining[:i], remaining[i+1:]...)
				return
			}
		}
		t.Fatalf("standard deck has no spare %s", name)
	}
	for _, n := range exclude {
		take(n)
	}
	for _, n := range top {
		take(n)
	}
	for i := len(top) - 1; i >= 0; i-- {
		remaining = append(remaining, top[i])
	}
	return remaining
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// loadTestMatch restores a snapshot with a seeded RNG and a memory logger.
func loadTestMatch(t *testing.T, snap Snapshot, strategist Strategist) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	m, err := LoadMatch(snap, MatchConfig{Rand: seeded(1), Logger: logger, Strategist: strategist})
	if err != nil {
		t.Fatalf("LoadMatch: %v", err)
	}
	return m, logger
}

func requireConservation(t *testing.T, m *Match, total int) {
	t.Helper()
	for _, side := range []Side{SidePlayer, SideAI} {
		if got := m.Combatant(side).CardCount(); got != total {
			t.Fatalf("%s has %d cards across zones, want %d", side, got, total)
		}
	}
}

func requirePlayable(t *testing.T, m *Match) {
	t.Helper()
	for _, side := range []Side{SidePlayer, SideAI} {
		c := m.Combatant(side)
		if len(c.Hand) > HandSize {
			t.Fatalf("%s hand has %d cards", side, len(c.Hand))
		}
		if c.BaseReachable() && !c.HasBaseInHand() {
			t.Fatalf("%s hand %v has no base card while one is reachable", side, cardNames(c.Hand))
		}
	}
}

func requireSameSnapshot(t *testing.T, want, got Snapshot) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("snapshots differ\nwant: %+v\ngot:  %+v", want, got)
	}
}
