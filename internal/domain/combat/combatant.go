package combat

import (
	"github.com/Interzoneism/qdnd-sub006/internal/domain/status"
	"github.com/Interzoneism/qdnd-sub006/internal/uuid"
)

// Ability identifies one of the six ability scores
type Ability string

const (
	STR Ability = "STR"
	DEX Ability = "DEX"
	CON Ability = "CON"
	INT Ability = "INT"
	WIS Ability = "WIS"
	CHA Ability = "CHA"
)

// Position is a battlefield coordinate. It is owned by the movement
// collaborator; the rules core reads it and mutates it only through the
// injected battlefield delegate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Combatant is one participant in a combat instance. Created at encounter
// start from resolved character data, removed at encounter end, mutated on
// every effect application.
type Combatant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Faction string `json:"faction"`

	MaxHP     int `json:"max_hp"`
	CurrentHP int `json:"current_hp"`

	Scores           map[Ability]int `json:"scores"`
	ProficiencyBonus int             `json:"proficiency_bonus"`
	ArmorClass       int             `json:"armor_class"`
	Speed            int             `json:"speed"`

	CritImmune       bool `json:"crit_immune,omitempty"`
	PlayerControlled bool `json:"player_controlled,omitempty"`

	Position Position `json:"position"`

	Budget    *ActionBudget  `json:"budget"`
	Resources *ResourcePool  `json:"resources"`
	Statuses  *status.Ledger `json:"-"`
}

// CombatantConfig holds the resolved character data for one participant
type CombatantConfig struct {
	ID               string
	Name             string
	Faction          string
	MaxHP            int
	Scores           map[Ability]int
	ProficiencyBonus int
	ArmorClass       int
	Speed            int
	CritImmune       bool
	PlayerControlled bool
	Position         Position
	UUIDGenerator    uuid.Generator
}

// NewCombatant creates a combatant with full HP and a fresh budget
func NewCombatant(cfg *CombatantConfig) *Combatant {
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	scores := cfg.Scores
	if scores == nil {
		scores = map[Ability]int{STR: 10, DEX: 10, CON: 10, INT: 10, WIS: 10, CHA: 10}
	}

	return &Combatant{
		ID:               cfg.ID,
		Name:             cfg.Name,
		Faction:          cfg.Faction,
		MaxHP:            cfg.MaxHP,
		CurrentHP:        cfg.MaxHP,
		Scores:           scores,
		ProficiencyBonus: cfg.ProficiencyBonus,
		ArmorClass:       cfg.ArmorClass,
		Speed:            cfg.Speed,
		CritImmune:       cfg.CritImmune,
		PlayerControlled: cfg.PlayerControlled,
		Position:         cfg.Position,
		Budget:           NewActionBudget(cfg.Speed),
		Resources:        NewResourcePool(),
		Statuses:         status.NewLedger(cfg.ID, gen),
	}
}

// AbilityModifier returns the modifier for an ability score, rounding toward
// negative infinity as the score table does
func (c *Combatant) AbilityModifier(ability Ability) int {
	score, exists := c.Scores[ability]
	if !exists {
		score = 10
	}
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// EffectiveAC is base armor class plus live status bonuses
func (c *Combatant) EffectiveAC() int {
	return c.ArmorClass + c.Statuses.ACBonus()
}

// ApplyDamage reduces HP by the mitigated amount and returns the actual HP
// change (clamped at zero)
func (c *Combatant) ApplyDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	before := c.CurrentHP
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
	return before - c.CurrentHP
}

// Heal raises HP and returns the actual HP change (clamped at max)
func (c *Combatant) Heal(amount int) int {
	if amount < 0 {
		amount = 0
	}
	before := c.CurrentHP
	c.CurrentHP += amount
	if c.CurrentHP > c.MaxHP {
		c.CurrentHP = c.MaxHP
	}
	return c.CurrentHP - before
}

// IsDefeated reports whether the combatant is at zero HP
func (c *Combatant) IsDefeated() bool {
	return c.CurrentHP <= 0
}
