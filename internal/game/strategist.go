package game

import "math"

// Strategist chooses the AI's move for the current turn.
type Strategist interface {
	ChooseMove(m *Match) Move
}

// stunUtility is the score bonus for Thunder while the AI trails in HP.
const stunUtility = 3.0

// GreedyStrategist predicts the human's next Base card from their history and
// plays the single move with the best expected value against it.
type GreedyStrategist struct{}

// ChooseMove implements Strategist.
func (GreedyStrategist) ChooseMove(m *Match) Move {
	return SelectMove(m.AI, m.Player.HP, m.MoveHistory)
}

// PredictBase returns the human's most frequent Base card. Ties go to the
// first in Rock, Paper, Scissors order; an empty history predicts Rock.
func PredictBase(history []CardName) CardName {
	counts := make(map[CardName]int, len(baseNames))
	for _, name := range history {
		counts[name]++
	}

	predicted := CardRock
	best := -1
	for _, name := range baseNames {
		if counts[name] > best {
			predicted = name
			best = counts[name]
		}
	}
	return predicted
}

// SelectMove scores every (base, power) combination in the AI's hand and
// returns the strictly best one, first found on ties. Power-ups are not
// considered while the AI is stunned.
func SelectMove(ai *Combatant, humanHP int, history []CardName) Move {
	bases := ai.BaseCards()
	if len(bases) == 0 {
		if len(ai.Hand) == 0 {
			return Move{}
		}
		return Move{Base: ai.Hand[0]}
	}

	powers := []*Card{nil}
	if !ai.IsStunned {
		powers = append(powers, ai.PowerCards()...)
	}

	predicted := PredictBase(history)
	var best Move
	bestScore := math.Inf(-1)
	for _, base := range bases {
		for _, power := range powers {
			move := Move{Base: base, Power: power}
			score := ScoreMove(move, predicted, ai.HP, humanHP)
			if score > bestScore {
				best = move
				bestScore = score
			}
		}
	}
	return best
}

// ScoreMove is the greedy heuristic: expected damage against the predicted
// Base card, plus a bonus for Thunder when the human has more HP.
func ScoreMove(move Move, predicted CardName, aiHP, humanHP int) float64 {
	dmg := move.Base.Damage
	switch move.powerName() {
	case CardFire:
		dmg += move.Power.Value
	case CardWater:
		dmg -= move.Power.Value
	}
	if dmg < 0 {
		dmg = 0
	}

	score := float64(dmg) * winProbability(move.Base.Name, predicted)
	if move.powerName() == CardThunder && humanHP > aiHP {
		score += stunUtility
	}
	return score
}

func winProbability(ai, predicted CardName) float64 {
	switch {
	case Beats(ai, predicted):
		return 1
	case ai == predicted:
		return 0.5
	default:
		return 0
	}
}
