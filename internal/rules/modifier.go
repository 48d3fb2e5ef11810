package rules

// ModifierType distinguishes flat adjustments from percentage multipliers
type ModifierType string

const (
	ModifierFlat    ModifierType = "flat"
	ModifierPercent ModifierType = "percent"
)

// Modifier is a named, typed numeric adjustment with a source tag. Callers
// resolve modifiers (from statuses, cover, height) before invoking the rules
// engine; the engine itself never reads combatant state.
type Modifier struct {
	Name   string
	Type   ModifierType
	Value  int // flat amount, or percentage points for percent modifiers
	Source string
}

// Flat builds a flat modifier
func Flat(name string, value int, source string) Modifier {
	return Modifier{Name: name, Type: ModifierFlat, Value: value, Source: source}
}

// Percent builds a percentage modifier. Value is in percentage points, so 50
// means +50% and -50 means half.
func Percent(name string, value int, source string) Modifier {
	return Modifier{Name: name, Type: ModifierPercent, Value: value, Source: source}
}

// SumFlat sums all flat modifiers in the list
func SumFlat(mods []Modifier) int {
	total := 0
	for _, m := range mods {
		if m.Type == ModifierFlat {
			total += m.Value
		}
	}
	return total
}

// ApplyModifiers applies the fixed stacking order: all flat modifiers sum
// first, then percentage modifiers apply multiplicatively to the summed
// result.
func ApplyModifiers(base int, mods []Modifier) int {
	result := base + SumFlat(mods)
	for _, m := range mods {
		if m.Type == ModifierPercent {
			result = result * (100 + m.Value) / 100
		}
	}
	return result
}

// AdvantageState captures advantage/disadvantage on a d20 roll
type AdvantageState int

const (
	AdvantageNone AdvantageState = iota
	Advantage
	Disadvantage
)

// CombineAdvantage merges advantage sources. Both states present together
// cancel to a single normal roll.
func CombineAdvantage(states ...AdvantageState) AdvantageState {
	hasAdv, hasDis := false, false
	for _, s := range states {
		switch s {
		case Advantage:
			hasAdv = true
		case Disadvantage:
			hasDis = true
		}
	}
	if hasAdv == hasDis {
		return AdvantageNone
	}
	if hasAdv {
		return Advantage
	}
	return Disadvantage
}

// ResistanceLevel is the damage-type multiplier a target currently has
type ResistanceLevel int

const (
	ResistanceNone ResistanceLevel = iota
	Resistant                      // half damage, round down
	Vulnerable                     // double damage
	Immune                         // no damage
)

func (r ResistanceLevel) String() string {
	switch r {
	case Resistant:
		return "resistant"
	case Vulnerable:
		return "vulnerable"
	case Immune:
		return "immune"
	default:
		return "none"
	}
}
