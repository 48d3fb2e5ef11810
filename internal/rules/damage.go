package rules

import (
	"github.com/Interzoneism/qdnd-sub006/internal/dice"
)

// DamageResult is the outcome of a damage roll after mitigation
type DamageResult struct {
	Rolled     int
	Mitigated  int
	Rolls      []int
	Resistance ResistanceLevel
}

// RollDamage rolls a damage formula, applies modifiers, then applies the
// target's current resistance level. Callers must query the target's status
// ledger for the resistance level on every application, not cache it.
func RollDamage(roller dice.Roller, formula dice.Formula, mods []Modifier, resistance ResistanceLevel) (*DamageResult, error) {
	roll, err := formula.Roll(roller)
	if err != nil {
		return nil, err
	}

	rolled := ApplyModifiers(roll.Total, mods)
	if rolled < 0 {
		rolled = 0
	}

	return &DamageResult{
		Rolled:     rolled,
		Mitigated:  Mitigate(rolled, resistance),
		Rolls:      roll.Rolls,
		Resistance: resistance,
	}, nil
}

// RollCriticalDamage rolls the formula's dice twice, keeping the flat bonus
// single, then mitigates.
func RollCriticalDamage(roller dice.Roller, formula dice.Formula, mods []Modifier, resistance ResistanceLevel) (*DamageResult, error) {
	roll, err := formula.Roll(roller)
	if err != nil {
		return nil, err
	}

	rolled := roll.Total
	rolls := append([]int{}, roll.Rolls...)

	if formula.Count > 0 {
		critRoll, err := roller.Roll(formula.Count, formula.Sides, 0)
		if err != nil {
			return nil, err
		}
		rolled += critRoll.Total
		rolls = append(rolls, critRoll.Rolls...)
	}

	rolled = ApplyModifiers(rolled, mods)
	if rolled < 0 {
		rolled = 0
	}

	return &DamageResult{
		Rolled:     rolled,
		Mitigated:  Mitigate(rolled, resistance),
		Rolls:      rolls,
		Resistance: resistance,
	}, nil
}

// Mitigate applies a resistance level to a rolled total. Resistance halves
// rounding down, vulnerability doubles, immunity zeroes.
func Mitigate(rolled int, resistance ResistanceLevel) int {
	switch resistance {
	case Resistant:
		return rolled / 2
	case Vulnerable:
		return rolled * 2
	case Immune:
		return 0
	default:
		return rolled
	}
}

// HalveOnSave halves damage for a successful save-for-half, rounding down.
// Zero is a valid result and is never floored to 1.
func HalveOnSave(amount int) int {
	return amount / 2
}
