package dice

import (
	"fmt"
	"strconv"
	"strings"

	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// Formula is a parsed dice expression like "2d6+3". Formulas are validated
// once at content load and cached; a malformed formula is a content error at
// validation time, never at roll time.
type Formula struct {
	Count int
	Sides int
	Bonus int
}

// ParseFormula parses a dice expression of the form NdS, NdS+B, or NdS-B.
// A bare integer like "4" is accepted as a flat amount.
func ParseFormula(expr string) (Formula, error) {
	trimmed := strings.TrimSpace(strings.ToLower(expr))
	if trimmed == "" {
		return Formula{}, engerr.Content("empty dice formula")
	}

	// Flat amounts have no dice component
	if !strings.Contains(trimmed, "d") {
		flat, err := strconv.Atoi(trimmed)
		if err != nil {
			return Formula{}, engerr.Contentf("invalid dice formula %q", expr)
		}
		return Formula{Bonus: flat}, nil
	}

	dicePart := trimmed
	bonus := 0
	sign := 1
	if idx := strings.IndexAny(trimmed, "+-"); idx > 0 {
		if trimmed[idx] == '-' {
			sign = -1
		}
		b, err := strconv.Atoi(trimmed[idx+1:])
		if err != nil {
			return Formula{}, engerr.Contentf("invalid dice formula %q", expr)
		}
		bonus = sign * b
		dicePart = trimmed[:idx]
	}

	parts := strings.Split(dicePart, "d")
	if len(parts) != 2 {
		return Formula{}, engerr.Contentf("invalid dice formula %q", expr)
	}

	count := 1
	if parts[0] != "" {
		c, err := strconv.Atoi(parts[0])
		if err != nil {
			return Formula{}, engerr.Contentf("invalid dice formula %q", expr)
		}
		count = c
	}

	sides, err := strconv.Atoi(parts[1])
	if err != nil {
		return Formula{}, engerr.Contentf("invalid dice formula %q", expr)
	}

	if count < 1 || sides < 1 {
		return Formula{}, engerr.Contentf("invalid dice formula %q", expr)
	}

	return Formula{Count: count, Sides: sides, Bonus: bonus}, nil
}

// MustParse parses a formula or panics. Test fixture use only.
func MustParse(expr string) Formula {
	f, err := ParseFormula(expr)
	if err != nil {
		panic(err)
	}
	return f
}

// Roll evaluates the formula with the given roller
func (f Formula) Roll(roller Roller) (*RollResult, error) {
	if f.Count == 0 {
		// Flat amount, no dice to roll
		return &RollResult{Total: f.Bonus, Bonus: f.Bonus}, nil
	}
	return roller.Roll(f.Count, f.Sides, f.Bonus)
}

// Min returns the lowest value the formula can produce
func (f Formula) Min() int {
	return f.Count + f.Bonus
}

// Max returns the highest value the formula can produce
func (f Formula) Max() int {
	return f.Count*f.Sides + f.Bonus
}

// String renders the formula back to NdS+B form
func (f Formula) String() string {
	if f.Count == 0 {
		return strconv.Itoa(f.Bonus)
	}
	s := fmt.Sprintf("%dd%d", f.Count, f.Sides)
	if f.Bonus > 0 {
		s += fmt.Sprintf("+%d", f.Bonus)
	} else if f.Bonus < 0 {
		s += strconv.Itoa(f.Bonus)
	}
	return s
}
