package rules

import (
	"github.com/Interzoneism/qdnd-sub006/internal/dice"
)

// AttackResult is the outcome of a single attack roll
type AttackResult struct {
	NaturalRoll int
	Total       int
	Hit         bool
	Critical    bool
	Advantage   AdvantageState
}

// AttackInput carries the resolved inputs for one attack roll. Cover and
// height arrive as pre-computed flat modifiers; this package computes no
// geometry.
type AttackInput struct {
	AttackerMods []Modifier
	DefenderAC   int
	Advantage    AdvantageState
	CritImmune   bool
}

// RollAttack rolls a d20 attack against AC. A natural 20 always hits and is
// a critical unless the target is immune to criticals; a natural 1 always
// misses regardless of modifiers.
func RollAttack(roller dice.Roller, in AttackInput) (*AttackResult, error) {
	roll, err := rollD20(roller, in.Advantage)
	if err != nil {
		return nil, err
	}

	natural := roll.RawTotal
	total := ApplyModifiers(natural, in.AttackerMods)

	result := &AttackResult{
		NaturalRoll: natural,
		Total:       total,
		Advantage:   in.Advantage,
	}

	switch {
	case natural == 20:
		result.Hit = true
		result.Critical = !in.CritImmune
	case natural == 1:
		result.Hit = false
	default:
		result.Hit = total >= in.DefenderAC
	}

	return result, nil
}

func rollD20(roller dice.Roller, advantage AdvantageState) (*dice.RollResult, error) {
	switch advantage {
	case Advantage:
		return roller.RollWithAdvantage(20, 0)
	case Disadvantage:
		return roller.RollWithDisadvantage(20, 0)
	default:
		return roller.Roll(1, 20, 0)
	}
}
