package rules

import (
	"github.com/Interzoneism/qdnd-sub006/internal/dice"
)

// SaveResult is the outcome of a saving throw
type SaveResult struct {
	NaturalRoll int
	Total       int
	Success     bool
}

// RollSave rolls a d20 saving throw against a DC
func RollSave(roller dice.Roller, defenderMods []Modifier, dc int, advantage AdvantageState) (*SaveResult, error) {
	roll, err := rollD20(roller, advantage)
	if err != nil {
		return nil, err
	}

	total := ApplyModifiers(roll.RawTotal, defenderMods)

	return &SaveResult{
		NaturalRoll: roll.RawTotal,
		Total:       total,
		Success:     total >= dc,
	}, nil
}

// ConcentrationDC computes the save DC after taking damage while
// concentrating: max(10, floor(damage / 2)).
func ConcentrationDC(damageTaken int) int {
	dc := damageTaken / 2
	if dc < 10 {
		dc = 10
	}
	return dc
}
