package dice

import (
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// ManualMockRoller returns a scripted sequence of rolls, letting tests pin
// exact dice outcomes (natural 20s, save failures) without touching RNG.
type ManualMockRoller struct {
	rolls []int
	index int
}

// NewManualMockRoller creates a mock roller with a queued roll sequence
func NewManualMockRoller(rolls ...int) *ManualMockRoller {
	return &ManualMockRoller{rolls: rolls}
}

// Queue appends more scripted rolls
func (m *ManualMockRoller) Queue(rolls ...int) {
	m.rolls = append(m.rolls, rolls...)
}

func (m *ManualMockRoller) next() (int, error) {
	if m.index >= len(m.rolls) {
		return 0, engerr.Internal("manual mock roller exhausted")
	}
	v := m.rolls[m.index]
	m.index++
	return v, nil
}

// Roll implements Roller.Roll using the scripted sequence
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 || sides < 1 {
		return nil, engerr.InvalidArgument("invalid dice parameters")
	}

	total := 0
	rolls := make([]int, count)
	for i := 0; i < count; i++ {
		v, err := m.next()
		if err != nil {
			return nil, err
		}
		rolls[i] = v
		total += v
	}

	result := &RollResult{
		Total:    total + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: total,
	}
	if count == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}
	return result, nil
}

// RollWithAdvantage consumes two scripted rolls and takes the higher
func (m *ManualMockRoller) RollWithAdvantage(sides, bonus int) (*RollResult, error) {
	return m.rollTwice(sides, bonus, true)
}

// RollWithDisadvantage consumes two scripted rolls and takes the lower
func (m *ManualMockRoller) RollWithDisadvantage(sides, bonus int) (*RollResult, error) {
	return m.rollTwice(sides, bonus, false)
}

func (m *ManualMockRoller) rollTwice(sides, bonus int, takeHigher bool) (*RollResult, error) {
	roll1, err := m.next()
	if err != nil {
		return nil, err
	}
	roll2, err := m.next()
	if err != nil {
		return nil, err
	}

	kept := roll1
	if takeHigher && roll2 > roll1 {
		kept = roll2
	}
	if !takeHigher && roll2 < roll1 {
		kept = roll2
	}

	result := &RollResult{
		Total:    kept + bonus,
		Rolls:    []int{roll1, roll2},
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
