package rules

import (
	"github.com/Interzoneism/qdnd-sub006/internal/dice"

	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// TiePolicy decides contest ties. Callers select the policy per ability
// (shove defaults to attacker-wins-on-tie); the policy is always explicit,
// never implicit.
type TiePolicy string

const (
	TieAttackerWins TiePolicy = "attacker_wins"
	TieDefenderWins TiePolicy = "defender_wins"
	TieNoWinner     TiePolicy = "no_winner"
)

// ContestWinner identifies who won an opposed check
type ContestWinner string

const (
	WinnerAttacker ContestWinner = "attacker"
	WinnerDefender ContestWinner = "defender"
	WinnerNone     ContestWinner = "none"
)

// ContestSide holds one contestant's resolved inputs
type ContestSide struct {
	Mods      []Modifier
	Advantage AdvantageState
}

// ContestResult is the outcome of an opposed check
type ContestResult struct {
	Winner ContestWinner
	RollA  int
	RollB  int
}

// Contest rolls an opposed d20 check between two sides
func Contest(roller dice.Roller, a, b ContestSide, policy TiePolicy) (*ContestResult, error) {
	switch policy {
	case TieAttackerWins, TieDefenderWins, TieNoWinner:
	default:
		return nil, engerr.InvalidArgumentf("unknown tie policy %q", policy)
	}

	rollA, err := rollD20(roller, a.Advantage)
	if err != nil {
		return nil, err
	}
	rollB, err := rollD20(roller, b.Advantage)
	if err != nil {
		return nil, err
	}

	totalA := ApplyModifiers(rollA.RawTotal, a.Mods)
	totalB := ApplyModifiers(rollB.RawTotal, b.Mods)

	result := &ContestResult{RollA: totalA, RollB: totalB}

	switch {
	case totalA > totalB:
		result.Winner = WinnerAttacker
	case totalB > totalA:
		result.Winner = WinnerDefender
	default:
		switch policy {
		case TieAttackerWins:
			result.Winner = WinnerAttacker
		case TieDefenderWins:
			result.Winner = WinnerDefender
		case TieNoWinner:
			result.Winner = WinnerNone
		}
	}

	return result, nil
}
