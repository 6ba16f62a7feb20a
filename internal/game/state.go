package game

const (
	StartingHP = 30
	HandSize   = 5

	// DefaultPlayerName is used when a match is started without a name.
	DefaultPlayerName = "Player"
)

// Combatant represents one side's entire state. The human player and the AI
// are structurally identical.
type Combatant struct {
	HP            int
	Deck          []*Card // top of deck is last element (pop from end)
	Hand          []*Card
	Discard       []*Card
	IsStunned     bool
	LastReshuffle ReshuffleReason
}

// NewCombatant creates a combatant at full HP holding the given deck.
func NewCombatant(deck []*Card) *Combatant {
	return &Combatant{
		HP:   StartingHP,
		Deck: deck,
	}
}

// DeckCount returns the number of cards remaining in the deck.
func (c *Combatant) DeckCount() int {
	return len(c.Deck)
}

// HandCount returns the number of cards in hand.
func (c *Combatant) HandCount() int {
	return len(c.Hand)
}

// CardCount returns the number of cards across all three zones.
func (c *Combatant) CardCount() int {
	return len(c.Deck) + len(c.Hand) + len(c.Discard)
}

// HasBaseInHand reports whether the hand can make a legal move.
func (c *Combatant) HasBaseInHand() bool {
	return indexOfBase(c.Hand) >= 0
}

// BaseReachable reports whether a Base card is left in the deck or discard.
func (c *Combatant) BaseReachable() bool {
	return indexOfBase(c.Deck) >= 0 || indexOfBase(c.Discard) >= 0
}

// BaseCards returns the Base cards in hand, in hand order.
func (c *Combatant) BaseCards() []*Card {
	var result []*Card
	for _, card := range c.Hand {
		if card.IsBase() {
			result = append(result, card)
		}
	}
	return result
}

// PowerCards returns the Power cards in hand, in hand order.
func (c *Combatant) PowerCards() []*Card {
	var result []*Card
	for _, card := range c.Hand {
		if card.IsPower() {
			result = append(result, card)
		}
	}
	return result
}

// InHand reports whether the card (or an interchangeable copy) is in hand.
func (c *Combatant) InHand(card *Card) bool {
	return handIndex(c.Hand, card) >= 0
}

// RemoveFromHand removes a card from the hand. The exact instance is
// preferred; otherwise the first card with the same name is taken.
func (c *Combatant) RemoveFromHand(card *Card) *Card {
	i := handIndex(c.Hand, card)
	if i < 0 {
		return nil
	}
	removed := c.Hand[i]
	c.Hand = append(c.Hand[:i], c.Hand[i+1:]...)
	return removed
}

// SendToDiscard moves a card to the discard pile.
func (c *Combatant) SendToDiscard(card *Card) {
	c.Discard = append(c.Discard, card)
}

// Discards moves a played card from hand to discard. Nil cards are ignored.
func (c *Combatant) Discards(card *Card) {
	if card == nil {
		return
	}
	if removed := c.RemoveFromHand(card); removed != nil {
		c.SendToDiscard(removed)
	}
}

// TakeDamage lowers HP, clamped at zero. Returns the old and new HP.
func (c *Combatant) TakeDamage(n int) (int, int) {
	old := c.HP
	c.HP -= n
	if c.HP < 0 {
		c.HP = 0
	}
	return old, c.HP
}

// IsDefeated reports whether HP has reached zero.
func (c *Combatant) IsDefeated() bool {
	return c.HP <= 0
}

func handIndex(hand []*Card, card *Card) int {
	if card == nil {
		return -1
	}
	for i, h := range hand {
		if h == card {
			return i
		}
	}
	for i, h := range hand {
		if h.Name == card.Name {
			return i
		}
	}
	return -1
}

func indexOfBase(cards []*Card) int {
	for i, card := range cards {
		if card.IsBase() {
			return i
		}
	}
	return -1
}
