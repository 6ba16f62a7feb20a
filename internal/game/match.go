package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/peterkuimelis/rpsx/internal/log"
)

// MatchConfig holds configuration for creating or restoring a match.
type MatchConfig struct {
	PlayerDeck []*Card // nil = standard deck
	AIDeck     []*Card // nil = standard deck
	Logger     log.EventLogger
	Strategist Strategist // nil = GreedyStrategist
	Rand       *rand.Rand // takes precedence over Seed
	Seed       int64      // RNG seed (0 for random)
}

func (cfg MatchConfig) rng() *rand.Rand {
	if cfg.Rand != nil {
		return cfg.Rand
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Match holds the complete state of one game between a human and the AI.
// It is not safe for concurrent use.
type Match struct {
	PlayerName  string
	Player      *Combatant
	AI          *Combatant
	MoveHistory []CardName // the human's Base cards, oldest first
	TurnCount   int
	IsOver      bool
	Stage       TurnStage

	rng        *rand.Rand
	logger     log.EventLogger
	strategist Strategist
}

// NewMatch shuffles both decks, deals opening hands and makes sure each hand
// can be played. Decks from cfg are copied card by card, so the caller's
// slices are left untouched and the two sides never share a card. A blank
// player name becomes DefaultPlayerName.
func NewMatch(playerName string, cfg MatchConfig) *Match {
	playerDeck := copyDeck(cfg.PlayerDeck)
	if playerDeck == nil {
		playerDeck = StandardDeck()
	}
	aiDeck := copyDeck(cfg.AIDeck)
	if aiDeck == nil {
		aiDeck = StandardDeck()
	}
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		playerName = DefaultPlayerName
	}

	m := newMatch(playerName, cfg)
	m.Player = NewCombatant(playerDeck)
	m.AI = NewCombatant(aiDeck)

	Shuffle(m.rng, m.Player.Deck)
	Shuffle(m.rng, m.AI.Deck)

	for i := 0; i < HandSize; i++ {
		for _, side := range []Side{SidePlayer, SideAI} {
			if card := m.Combatant(side).Draw(m.rng, false); card != nil {
				m.log(log.NewDrawEvent(0, m.Stage.String(), int(side), card.Name.String()))
			}
		}
	}
	for _, side := range []Side{SidePlayer, SideAI} {
		m.ensurePlayable(side)
	}

	return m
}

func copyDeck(deck []*Card) []*Card {
	if deck == nil {
		return nil
	}
	out := make([]*Card, 0, len(deck))
	for _, card := range deck {
		c := *card
		out = append(out, &c)
	}
	return out
}

func newMatch(playerName string, cfg MatchConfig) *Match {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	strategist := cfg.Strategist
	if strategist == nil {
		strategist = GreedyStrategist{}
	}
	return &Match{
		PlayerName: playerName,
		Stage:      StageAwaitingMove,
		rng:        cfg.rng(),
		logger:     logger,
		strategist: strategist,
	}
}

// Combatant returns the state for the given side.
func (m *Match) Combatant(side Side) *Combatant {
	if side == SideAI {
		return m.AI
	}
	return m.Player
}

// Logger returns the match's event logger.
func (m *Match) Logger() log.EventLogger {
	return m.logger
}

// ValidateMove checks a human move against the current hand and stun status.
func (m *Match) ValidateMove(move Move) error {
	if !move.Base.IsBase() {
		return fmt.Errorf("%w: %s is not a base card", ErrInvalidMove, move.Base)
	}
	if !m.Player.InHand(move.Base) {
		return fmt.Errorf("%w: %s is not in hand", ErrInvalidMove, move.Base)
	}
	if move.Power == nil {
		return nil
	}
	if m.Player.IsStunned {
		return fmt.Errorf("%w: stunned, cannot use %s", ErrInvalidMove, move.Power)
	}
	if !move.Power.IsPower() {
		return fmt.Errorf("%w: %s is not a power-up", ErrInvalidMove, move.Power)
	}
	if !m.Player.InHand(move.Power) {
		return fmt.Errorf("%w: %s is not in hand", ErrInvalidMove, move.Power)
	}
	return nil
}

// PlayTurn plays the human's move against the strategist's answer. The move
// is validated before any state changes. On the final turn the match is
// marked over and no replenishment should follow.
func (m *Match) PlayTurn(move Move) (TurnRecord, error) {
	if m.IsOver {
		return TurnRecord{}, ErrMatchOver
	}
	if err := m.ValidateMove(move); err != nil {
		return TurnRecord{}, err
	}

	m.TurnCount++
	m.Stage = StageAwaitingMove
	m.log(log.NewTurnEvent(m.TurnCount))

	aiMove := m.strategist.ChooseMove(m)
	m.MoveHistory = append(m.MoveHistory, move.Base.Name)

	// Take the exact hand instances so zones keep their identities.
	playerMove := Move{Base: m.Player.RemoveFromHand(move.Base)}
	m.Player.SendToDiscard(playerMove.Base)
	if move.Power != nil {
		playerMove.Power = m.Player.RemoveFromHand(move.Power)
		m.Player.SendToDiscard(playerMove.Power)
	}
	m.AI.Discards(aiMove.Base)
	m.AI.Discards(aiMove.Power)

	m.log(log.NewPlayEvent(m.TurnCount, m.Stage.String(), int(SidePlayer), playerMove.Base.String(), powerLabel(playerMove)))
	m.log(log.NewPlayEvent(m.TurnCount, m.Stage.String(), int(SideAI), aiMove.Base.String(), powerLabel(aiMove)))

	res := Resolve(playerMove, aiMove)
	m.Stage = StageResolved
	m.applyResult(res)

	rec := TurnRecord{
		Turn:       m.TurnCount,
		PlayerMove: playerMove,
		AIMove:     aiMove,
		Result:     res,
	}

	if m.Player.IsDefeated() || m.AI.IsDefeated() {
		m.IsOver = true
		m.Stage = StageGameOver
		winner := SidePlayer
		if m.Player.IsDefeated() {
			winner = SideAI
		}
		m.log(log.NewWinEvent(m.TurnCount, m.Stage.String(), int(winner), m.Result()))
		rec.GameOver = true
	}

	return rec, nil
}

// applyResult moves HP and recomputes both stun flags from this round alone.
func (m *Match) applyResult(res RoundResult) {
	phase := m.Stage.String()
	winner := -1
	switch res.Winner {
	case WinnerPlayer:
		winner = int(SidePlayer)
	case WinnerAI:
		winner = int(SideAI)
	}
	m.log(log.NewRoundEvent(m.TurnCount, phase, winner, res.PlayerDamage+res.AIDamage))

	if res.PlayerDamage > 0 {
		old, hp := m.AI.TakeDamage(res.PlayerDamage)
		m.log(log.NewHPChangeEvent(m.TurnCount, phase, int(SideAI), old, hp, "round lost"))
	}
	if res.AIDamage > 0 {
		old, hp := m.Player.TakeDamage(res.AIDamage)
		m.log(log.NewHPChangeEvent(m.TurnCount, phase, int(SidePlayer), old, hp, "round lost"))
	}

	m.Player.IsStunned = res.PlayerStunned
	m.AI.IsStunned = res.AIStunned
	if res.PlayerStunned {
		m.log(log.NewStunEvent(m.TurnCount, phase, int(SidePlayer)))
	}
	if res.AIStunned {
		m.log(log.NewStunEvent(m.TurnCount, phase, int(SideAI)))
	}
}

// DrawForEndOfTurn clears last turn's reshuffle reasons and refills both
// hands, reporting who reshuffled and why.
func (m *Match) DrawForEndOfTurn() (DrawReport, error) {
	if m.IsOver {
		return DrawReport{}, ErrMatchOver
	}

	m.Player.LastReshuffle = ReshuffleNone
	m.AI.LastReshuffle = ReshuffleNone

	for _, side := range []Side{SidePlayer, SideAI} {
		m.replenish(side)
	}
	m.Stage = StageAwaitingMove

	return DrawReport{
		PlayerReshuffled: m.Player.LastReshuffle != ReshuffleNone,
		AIReshuffled:     m.AI.LastReshuffle != ReshuffleNone,
		PlayerReason:     m.Player.LastReshuffle,
		AIReason:         m.AI.LastReshuffle,
	}, nil
}

func (m *Match) replenish(side Side) {
	c := m.Combatant(side)
	m.Stage = StageReplenished
	drawn := c.fillHand(m.rng)
	m.logDraws(side, drawn, c.LastReshuffle)
	m.ensurePlayable(side)
}

func (m *Match) ensurePlayable(side Side) {
	drawn := m.Combatant(side).EnsurePlayableHand(m.rng)
	if len(drawn) == 0 {
		return
	}
	m.logDraws(side, drawn, ReshuffleUnplayableHand)
}

func (m *Match) logDraws(side Side, drawn []*Card, reason ReshuffleReason) {
	phase := m.Stage.String()
	if reason != ReshuffleNone {
		m.log(log.NewReshuffleEvent(m.TurnCount, phase, int(side), reason.String()))
	}
	for _, card := range drawn {
		m.log(log.NewDrawEvent(m.TurnCount, phase, int(side), card.Name.String()))
	}
	if c := m.Combatant(side); len(c.Hand) < HandSize && len(c.Deck) == 0 && len(c.Discard) == 0 {
		m.log(log.NewExhaustedEvent(m.TurnCount, phase, int(side)))
	}
}

// Winner returns the side that won, and false while the match is running.
func (m *Match) Winner() (Side, bool) {
	if !m.IsOver {
		return SidePlayer, false
	}
	if m.Player.IsDefeated() {
		return SideAI, true
	}
	return SidePlayer, true
}

// Result describes the outcome for display. Empty while the match is running.
func (m *Match) Result() string {
	winner, ok := m.Winner()
	if !ok {
		return ""
	}
	if winner == SideAI {
		return fmt.Sprintf("AI wins: %s's HP reached 0", m.PlayerName)
	}
	return fmt.Sprintf("%s wins: AI's HP reached 0", m.PlayerName)
}

func powerLabel(mv Move) string {
	if mv.Power == nil {
		return ""
	}
	return mv.Power.Name.String()
}

// log emits a match event through the logger.
func (m *Match) log(event log.GameEvent) {
	m.logger.Log(event)
}
