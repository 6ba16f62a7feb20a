package game

import "math/rand"

// reshuffleDiscard turns the discard pile into a fresh deck.
func (c *Combatant) reshuffleDiscard(rng *rand.Rand, reason ReshuffleReason) {
	c.Deck = append(c.Deck, c.Discard...)
	c.Discard = nil
	Shuffle(rng, c.Deck)
	c.LastReshuffle = reason
}

// Draw moves one card into the hand and returns it, or nil when both deck
// and discard are empty.
//
// An empty deck is rebuilt from the discard pile first. With forceBase the
// first Base card in the deck is cut out of order; if the deck holds none but
// the discard does, deck and discard are reshuffled together and the search
// is retried once before falling back to a normal draw from the top.
func (c *Combatant) Draw(rng *rand.Rand, forceBase bool) *Card {
	if len(c.Deck) == 0 {
		if len(c.Discard) == 0 {
			return nil
		}
		c.reshuffleDiscard(rng, ReshuffleDeckEmpty)
	}

	if forceBase {
		i := indexOfBase(c.Deck)
		if i < 0 && indexOfBase(c.Discard) >= 0 {
			c.reshuffleDiscard(rng, ReshuffleUnplayableHand)
			i = indexOfBase(c.Deck)
		}
		if i >= 0 {
			card := c.Deck[i]
			c.Deck = append(c.Deck[:i], c.Deck[i+1:]...)
			c.Hand = append(c.Hand, card)
			return card
		}
	}

	if len(c.Deck) == 0 {
		return nil
	}
	card := c.Deck[len(c.Deck)-1]
	c.Deck = c.Deck[:len(c.Deck)-1]
	c.Hand = append(c.Hand, card)
	return card
}

// fillHand draws up to HandSize. The draw that would complete a hand of four
// Power cards is forced to a Base card.
func (c *Combatant) fillHand(rng *rand.Rand) []*Card {
	var drawn []*Card
	for len(c.Hand) < HandSize {
		force := len(c.Hand) == HandSize-1 && !c.HasBaseInHand()
		card := c.Draw(rng, force)
		if card == nil {
			break
		}
		drawn = append(drawn, card)
	}
	return drawn
}

// EnsurePlayableHand rebuilds the hand when it holds no Base card but one is
// still reachable: hand and deck go to the discard, the discard becomes a new
// deck and a fresh hand is drawn. Returns the cards drawn, if any.
func (c *Combatant) EnsurePlayableHand(rng *rand.Rand) []*Card {
	if c.HasBaseInHand() || !c.BaseReachable() {
		return nil
	}

	c.Discard = append(c.Discard, c.Hand...)
	c.Hand = nil
	c.Discard = append(c.Discard, c.Deck...)
	c.Deck = nil
	c.reshuffleDiscard(rng, ReshuffleUnplayableHand)

	return c.fillHand(rng)
}

// Replenish refills the hand at end of turn and then guarantees it is playable.
func (c *Combatant) Replenish(rng *rand.Rand) []*Card {
	drawn := c.fillHand(rng)
	return append(drawn, c.EnsurePlayableHand(rng)...)
}
