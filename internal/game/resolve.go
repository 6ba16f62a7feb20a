package game

// Resolve computes the outcome of one pair of moves. It is pure: neither
// move nor any combatant is modified.
//
// Only the round winner deals damage: the Base card's damage, +Fire unless
// the loser played Water, then -Water (floored at zero) when the loser played
// Water. The loser is stunned when the winner played Thunder.
func Resolve(playerMove, aiMove Move) RoundResult {
	res := RoundResult{Winner: roundWinner(playerMove.Base, aiMove.Base)}

	switch res.Winner {
	case WinnerPlayer:
		res.PlayerDamage = attackDamage(playerMove, aiMove)
		res.AIStunned = playerMove.powerName() == CardThunder
	case WinnerAI:
		res.AIDamage = attackDamage(aiMove, playerMove)
		res.PlayerStunned = aiMove.powerName() == CardThunder
	}

	return res
}

// roundWinner applies Rock > Scissors > Paper > Rock. A side without a Base
// card (only possible from a Power-only hand) loses to any Base card.
func roundWinner(p, a *Card) Winner {
	pOK, aOK := p.IsBase(), a.IsBase()
	switch {
	case !pOK && !aOK:
		return WinnerTie
	case !aOK:
		return WinnerPlayer
	case !pOK:
		return WinnerAI
	case Beats(p.Name, a.Name):
		return WinnerPlayer
	case Beats(a.Name, p.Name):
		return WinnerAI
	default:
		return WinnerTie
	}
}

func attackDamage(winner, loser Move) int {
	dmg := winner.Base.Damage
	if winner.powerName() == CardFire && loser.powerName() != CardWater {
		dmg += winner.Power.Value
	}
	if loser.powerName() == CardWater {
		dmg -= loser.Power.Value
		if dmg < 0 {
			dmg = 0
		}
	}
	return dmg
}
