package game

import (
	"errors"
	"fmt"
)

// Snapshot is the serializable form of a Match. Cards are stored by name;
// decks keep their order with the top card last.
type Snapshot struct {
	PlayerName  string            `json:"playerName" yaml:"player_name"`
	Player      CombatantSnapshot `json:"player" yaml:"player"`
	AI          CombatantSnapshot `json:"ai" yaml:"ai"`
	MoveHistory []string          `json:"playerHistory" yaml:"player_history"`
	TurnCount   int               `json:"turnCount" yaml:"turn_count"`
	IsOver      bool              `json:"isGameOver" yaml:"is_game_over"`
}

// CombatantSnapshot is the serializable form of a Combatant.
type CombatantSnapshot struct {
	HP            int      `json:"hp" yaml:"hp"`
	Deck          []string `json:"deck" yaml:"deck"`
	Hand          []string `json:"hand" yaml:"hand"`
	Discard       []string `json:"discard" yaml:"discard"`
	IsStunned     bool     `json:"isStunned" yaml:"is_stunned"`
	LastReshuffle string   `json:"reshuffleReason,omitempty" yaml:"reshuffle_reason,omitempty"`
}

// Serialize captures the match as a Snapshot. The result shares no memory
// with the match.
func (m *Match) Serialize() Snapshot {
	history := make([]string, 0, len(m.MoveHistory))
	for _, name := range m.MoveHistory {
		history = append(history, name.String())
	}
	return Snapshot{
		PlayerName:  m.PlayerName,
		Player:      snapshotCombatant(m.Player),
		AI:          snapshotCombatant(m.AI),
		MoveHistory: history,
		TurnCount:   m.TurnCount,
		IsOver:      m.IsOver,
	}
}

func snapshotCombatant(c *Combatant) CombatantSnapshot {
	return CombatantSnapshot{
		HP:            c.HP,
		Deck:          cardNames(c.Deck),
		Hand:          cardNames(c.Hand),
		Discard:       cardNames(c.Discard),
		IsStunned:     c.IsStunned,
		LastReshuffle: c.LastReshuffle.String(),
	}
}

func cardNames(cards []*Card) []string {
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name.String())
	}
	return names
}

// LoadMatch restores a match from a snapshot. Decks in cfg are ignored; the
// RNG, logger and strategist are taken from cfg as in NewMatch. Malformed
// snapshots are rejected with ErrInvalidSnapshot.
func LoadMatch(snap Snapshot, cfg MatchConfig) (*Match, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	m := newMatch(snap.PlayerName, cfg)
	var err error
	if m.Player, err = restoreCombatant(snap.Player); err != nil {
		return nil, fmt.Errorf("%w: player: %v", ErrInvalidSnapshot, err)
	}
	if m.AI, err = restoreCombatant(snap.AI); err != nil {
		return nil, fmt.Errorf("%w: ai: %v", ErrInvalidSnapshot, err)
	}
	for _, s := range snap.MoveHistory {
		name, _ := ParseCardName(s)
		m.MoveHistory = append(m.MoveHistory, name)
	}
	m.TurnCount = snap.TurnCount
	m.IsOver = snap.IsOver
	if m.IsOver {
		m.Stage = StageGameOver
	}
	return m, nil
}

// Validate checks the snapshot's structure without building a match.
func (s Snapshot) Validate() error {
	var errs []error
	if s.PlayerName == "" {
		errs = append(errs, errors.New("player name is empty"))
	}
	if s.TurnCount < 0 {
		errs = append(errs, fmt.Errorf("turn count %d is negative", s.TurnCount))
	}
	for i, name := range s.MoveHistory {
		card, err := FindCard(name)
		if err != nil || !card.IsBase() {
			errs = append(errs, fmt.Errorf("history[%d]: %q is not a base card", i, name))
		}
	}
	for _, side := range []struct {
		label string
		c     CombatantSnapshot
	}{{"player", s.Player}, {"ai", s.AI}} {
		if err := side.c.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", side.label, err))
		}
	}
	defeated := s.Player.HP == 0 || s.AI.HP == 0
	if defeated && !s.IsOver {
		errs = append(errs, errors.New("a combatant has 0 HP but the match is not over"))
	}
	if s.IsOver && !defeated {
		errs = append(errs, errors.New("match is over but both combatants have HP left"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, errors.Join(errs...))
	}
	return nil
}

func (c CombatantSnapshot) validate() error {
	if c.HP < 0 {
		return fmt.Errorf("hp %d is negative", c.HP)
	}
	if len(c.Hand) > HandSize {
		return fmt.Errorf("hand has %d cards, max %d", len(c.Hand), HandSize)
	}
	if _, err := parseReshuffleReason(c.LastReshuffle); err != nil {
		return err
	}
	for _, zone := range [][]string{c.Deck, c.Hand, c.Discard} {
		for _, name := range zone {
			if _, ok := CardRegistry[name]; !ok {
				return fmt.Errorf("unknown card %q", name)
			}
		}
	}
	return nil
}

func restoreCombatant(s CombatantSnapshot) (*Combatant, error) {
	reason, err := parseReshuffleReason(s.LastReshuffle)
	if err != nil {
		return nil, err
	}
	c := &Combatant{
		HP:            s.HP,
		IsStunned:     s.IsStunned,
		LastReshuffle: reason,
	}
	if c.Deck, err = restoreZone(s.Deck); err != nil {
		return nil, err
	}
	if c.Hand, err = restoreZone(s.Hand); err != nil {
		return nil, err
	}
	if c.Discard, err = restoreZone(s.Discard); err != nil {
		return nil, err
	}
	return c, nil
}

func restoreZone(names []string) ([]*Card, error) {
	cards := make([]*Card, 0, len(names))
	for _, name := range names {
		card, err := FindCard(name)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func parseReshuffleReason(s string) (ReshuffleReason, error) {
	for _, r := range []ReshuffleReason{ReshuffleNone, ReshuffleDeckEmpty, ReshuffleUnplayableHand} {
		if r.String() == s {
			return r, nil
		}
	}
	return ReshuffleNone, fmt.Errorf("unknown reshuffle reason %q", s)
}
