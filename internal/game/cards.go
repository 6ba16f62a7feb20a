package game

// Rock: Base. Deals 4 damage, beats Scissors.
func Rock() *Card {
	return &Card{
		Name:        CardRock,
		Kind:        KindBase,
		Damage:      4,
		Description: "Deals 4 damage. Wins against Scissors.",
	}
}

// Paper: Base. Deals 3 damage, beats Rock.
func Paper() *Card {
	return &Card{
		Name:        CardPaper,
		Kind:        KindBase,
		Damage:      3,
		Description: "Deals 3 damage. Wins against Rock.",
	}
}

// Scissors: Base. Deals 5 damage, beats Paper.
func Scissors() *Card {
	return &Card{
		Name:        CardScissors,
		Kind:        KindBase,
		Damage:      5,
		Description: "Deals 5 damage. Wins against Paper.",
	}
}

// Fire: Power. +2 damage when its Base wins, unless the loser played Water.
func Fire() *Card {
	return &Card{
		Name:        CardFire,
		Kind:        KindPower,
		Effect:      EffectDamage,
		Value:       2,
		Description: "Adds +2 damage to your attack.",
	}
}

// Water: Power. Reduces incoming damage by 1 and cancels an opposing Fire.
func Water() *Card {
	return &Card{
		Name:        CardWater,
		Kind:        KindPower,
		Effect:      EffectDefense,
		Value:       1,
		Description: "Reduces incoming damage by 1 and cancels opponent's Fire power-up.",
	}
}

// Thunder: Power. Stuns the round loser for their next turn.
func Thunder() *Card {
	return &Card{
		Name:        CardThunder,
		Kind:        KindPower,
		Effect:      EffectStun,
		Description: "If you win the round, your opponent cannot use a Power-Up on their next turn.",
	}
}

// beats holds the classic precedence: key beats value.
var beats = map[CardName]CardName{
	CardRock:     CardScissors,
	CardScissors: CardPaper,
	CardPaper:    CardRock,
}

// Beats reports whether base a defeats base b.
func Beats(a, b CardName) bool {
	target, ok := beats[a]
	return ok && target == b
}

// baseNames lists the Base cards in enumeration order (used for prediction tie-breaks).
var baseNames = [...]CardName{CardRock, CardPaper, CardScissors}
