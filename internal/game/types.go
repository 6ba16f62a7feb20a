package game

import "fmt"

// --- Enums ---

type CardName int

const (
	CardNone CardName = iota
	CardRock
	CardPaper
	CardScissors
	CardFire
	CardWater
	CardThunder
)

func (n CardName) String() string {
	switch n {
	case CardRock:
		return "Rock"
	case CardPaper:
		return "Paper"
	case CardScissors:
		return "Scissors"
	case CardFire:
		return "Fire"
	case CardWater:
		return "Water"
	case CardThunder:
		return "Thunder"
	default:
		return ""
	}
}

// ParseCardName maps a display name back to its CardName.
func ParseCardName(s string) (CardName, error) {
	for n := CardRock; n <= CardThunder; n++ {
		if n.String() == s {
			return n, nil
		}
	}
	return CardNone, fmt.Errorf("unknown card name %q", s)
}

type CardKind int

const (
	KindBase CardKind = iota
	KindPower
)

func (k CardKind) String() string {
	if k == KindPower {
		return "Power"
	}
	return "Base"
}

type Effect int

const (
	EffectNone Effect = iota
	EffectDamage
	EffectDefense
	EffectStun
)

func (e Effect) String() string {
	switch e {
	case EffectDamage:
		return "damage"
	case EffectDefense:
		return "defense"
	case EffectStun:
		return "stun"
	default:
		return ""
	}
}

// Side identifies a combatant.
type Side int

const (
	SidePlayer Side = iota
	SideAI
)

func (s Side) String() string {
	if s == SideAI {
		return "ai"
	}
	return "player"
}

// Winner is the outcome of a single round.
type Winner int

const (
	WinnerTie Winner = iota
	WinnerPlayer
	WinnerAI
)

func (w Winner) String() string {
	switch w {
	case WinnerPlayer:
		return "player"
	case WinnerAI:
		return "ai"
	default:
		return "tie"
	}
}

// ReshuffleReason records why a combatant's deck was rebuilt this turn.
type ReshuffleReason int

const (
	ReshuffleNone ReshuffleReason = iota
	ReshuffleDeckEmpty
	ReshuffleUnplayableHand
)

func (r ReshuffleReason) String() string {
	switch r {
	case ReshuffleDeckEmpty:
		return "Deck Empty"
	case ReshuffleUnplayableHand:
		return "Unplayable Hand"
	default:
		return ""
	}
}

// TurnStage tracks where the match is in the turn cycle.
type TurnStage int

const (
	StageAwaitingMove TurnStage = iota
	StageResolved
	StageReplenished
	StageGameOver
)

func (s TurnStage) String() string {
	switch s {
	case StageResolved:
		return "Resolved"
	case StageReplenished:
		return "Replenished"
	case StageGameOver:
		return "GameOver"
	default:
		return "AwaitingMove"
	}
}

// --- Card definition (static, from the catalog) ---

type Card struct {
	Name        CardName
	Kind        CardKind
	Damage      int    // Base cards only
	Effect      Effect // Power cards only
	Value       int    // effect magnitude; 0 for Thunder
	Description string
}

func (c *Card) String() string {
	if c == nil {
		return "(none)"
	}
	return c.Name.String()
}

// IsBase reports whether the card decides the round winner.
func (c *Card) IsBase() bool {
	return c != nil && c.Kind == KindBase
}

// IsPower reports whether the card is a power-up modifier.
func (c *Card) IsPower() bool {
	return c != nil && c.Kind == KindPower
}

// --- Moves and results ---

// Move is one side's play for a round. Power is nil when no power-up is used.
type Move struct {
	Base  *Card
	Power *Card
}

func (m Move) String() string {
	if m.Power == nil {
		return m.Base.String()
	}
	return fmt.Sprintf("%s + %s", m.Base, m.Power)
}

// powerName returns the power-up's name, or CardNone.
func (m Move) powerName() CardName {
	if m.Power == nil {
		return CardNone
	}
	return m.Power.Name
}

// RoundResult is the outcome of Resolve. Only the winner's damage is non-zero.
type RoundResult struct {
	Winner        Winner
	PlayerDamage  int // damage dealt by the player to the AI
	AIDamage      int // damage dealt by the AI to the player
	PlayerStunned bool // player cannot use a power-up next turn
	AIStunned     bool
}

// TurnRecord is everything a caller needs to render one played turn.
type TurnRecord struct {
	Turn       int
	PlayerMove Move
	AIMove     Move
	Result     RoundResult
	GameOver   bool
}

// DrawReport describes the reshuffles that happened during end-of-turn draws.
type DrawReport struct {
	PlayerReshuffled bool
	AIReshuffled     bool
	PlayerReason     ReshuffleReason
	AIReason         ReshuffleReason
}
