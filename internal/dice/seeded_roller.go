package dice

import (
	"math/rand"

	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// seededRoller implements Roller over a private rand source. Every combat
// instance owns its own roller so parallel instances never share RNG state
// and a fixed seed replays bit-for-bit.
type seededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller creates a Roller from an explicit seed. There is no
// unseeded constructor: the absence of a seed is a construction error at the
// instance level, not a silently-chosen fallback.
func NewSeededRoller(seed int64) Roller {
	return &seededRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll implements Roller.Roll
func (r *seededRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, engerr.InvalidArgumentf("invalid dice count %d", count)
	}
	if sides < 1 {
		return nil, engerr.InvalidArgumentf("invalid dice size %d", sides)
	}

	total := 0
	rolls := make([]int, count)
	for i := 0; i < count; i++ {
		roll := r.rng.Intn(sides) + 1
		rolls[i] = roll
		total += roll
	}

	result := &RollResult{
		Total:    total + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: total,
	}

	// Check for crit/fumble on d20
	if count == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result, nil
}

// RollWithAdvantage implements Roller.RollWithAdvantage
func (r *seededRoller) RollWithAdvantage(sides, bonus int) (*RollResult, error) {
	return r.rollTwice(sides, bonus, true)
}

// RollWithDisadvantage implements Roller.RollWithDisadvantage
func (r *seededRoller) RollWithDisadvantage(sides, bonus int) (*RollResult, error) {
	return r.rollTwice(sides, bonus, false)
}

func (r *seededRoller) rollTwice(sides, bonus int, takeHigher bool) (*RollResult, error) {
	if sides < 1 {
		return nil, engerr.InvalidArgumentf("invalid dice size %d", sides)
	}

	roll1 := r.rng.Intn(sides) + 1
	roll2 := r.rng.Intn(sides) + 1

	kept := roll1
	if takeHigher {
		if roll2 > roll1 {
			kept = roll2
		}
	} else {
		if roll2 < roll1 {
			kept = roll2
		}
	}

	result := &RollResult{
		Total:    kept + bonus,
		Rolls:    []int{roll1, roll2}, // Show both rolls
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
		RawTotal: kept,
	}

	if sides == 20 {
		result.IsCrit = kept == 20
		result.IsFumble = kept == 1
	}

	return result, nil
}
