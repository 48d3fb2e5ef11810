// Package testutils provides shared fixtures for engine tests: a standard
// content set and combatant builders with deterministic ids.
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Interzoneism/qdnd-sub006/internal/content"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/combat"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/shared"
	"github.com/Interzoneism/qdnd-sub006/internal/rules"
	"github.com/Interzoneism/qdnd-sub006/internal/uuid"
)

// StandardContent returns the content set exercised across packages: an
// attack cantrip, a save-for-half burst, a heal, a stacking burn, two
// concentration spells, and two reactions.
func StandardContent() *content.RegistryConfig {
	return &content.RegistryConfig{
		Abilities: []*content.AbilityDefinition{
			{
				ID:         "firebolt",
				Name:       "Firebolt",
				ActionType: shared.ActionAttack,
				Cost:       shared.ActionCost{Action: true},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectDamage, Formula: "1d10", DamageType: "fire", AttackRoll: true},
				},
			},
			{
				ID:         "burst",
				Name:       "Flame Burst",
				ActionType: shared.ActionCast,
				Cost:       shared.ActionCost{Action: true, SlotLevel: 2},
				Targeting:  content.TargetAllEnemies,
				SaveDC:     13,
				Effects: []content.EffectDefinition{
					{Type: content.EffectDamage, Formula: "2d6", DamageType: "fire", SaveAbility: "DEX", HalfOnSave: true},
				},
			},
			{
				ID:         "healing_word",
				Name:       "Healing Word",
				ActionType: shared.ActionCast,
				Cost:       shared.ActionCost{BonusAction: true},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectHeal, Formula: "1d4+2"},
				},
			},
			{
				ID:         "ignite",
				Name:       "Ignite",
				ActionType: shared.ActionCast,
				Cost:       shared.ActionCost{Action: true},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectApplyStatus, StatusID: "burning"},
				},
			},
			{
				ID:         "hex",
				Name:       "Hex",
				ActionType: shared.ActionCast,
				Cost:       shared.ActionCost{BonusAction: true, SlotLevel: 1},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectApplyStatus, StatusID: "hex_anchor"},
					{Type: content.EffectApplyStatus, StatusID: "hexed"},
				},
			},
			{
				ID:         "haste",
				Name:       "Haste",
				ActionType: shared.ActionCast,
				Cost:       shared.ActionCost{Action: true, SlotLevel: 3},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectApplyStatus, StatusID: "haste_anchor"},
					{Type: content.EffectApplyStatus, StatusID: "hastened"},
				},
			},
			{
				ID:         "cleanse",
				Name:       "Cleanse",
				ActionType: shared.ActionCast,
				Cost:       shared.ActionCost{Action: true},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectRemoveStatus, RemoveGroup: "fire_dot"},
				},
			},
			{
				ID:         "shove",
				Name:       "Shove",
				ActionType: shared.ActionShove,
				Cost:       shared.ActionCost{Action: true},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectForcedMove, Distance: 5},
				},
			},
			{
				ID:         "counter",
				Name:       "Counter",
				ActionType: shared.ActionCast,
				Cost:       shared.ActionCost{Reaction: true},
				Targeting:  content.TargetSelf,
				Effects:    []content.EffectDefinition{},
			},
			{
				ID:         "riposte",
				Name:       "Riposte",
				ActionType: shared.ActionAttack,
				Cost:       shared.ActionCost{Reaction: true},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectDamage, Formula: "1d6", DamageType: "slashing"},
				},
			},
		},
		Statuses: []*content.StatusDefinition{
			{
				ID:             "burning",
				Name:           "Burning",
				MaxStacks:      3,
				Stacking:       content.StackingStacks,
				DurationTurns:  2,
				TickTiming:     content.TickTurnStart,
				TickFormula:    "1d4",
				TickDamageType: "fire",
				RemovalGroup:   "fire_dot",
			},
			{
				ID:            "hex_anchor",
				Name:          "Hex (Concentrating)",
				DurationTurns: 3,
				Concentration: true,
			},
			{
				ID:            "hexed",
				Name:          "Hexed",
				DurationTurns: 3,
				Grants:        content.Grants{SaveBonus: -2},
			},
			{
				ID:            "haste_anchor",
				Name:          "Haste (Concentrating)",
				DurationTurns: 3,
				Concentration: true,
			},
			{
				ID:            "hastened",
				Name:          "Hastened",
				DurationTurns: 3,
				Grants: content.Grants{
					ACBonus:      2,
					ExtraActions: []shared.ActionType{shared.ActionAttack, shared.ActionDash},
				},
			},
			{
				ID:        "fire_ward",
				Name:      "Fire Ward",
				Permanent: true,
				Grants: content.Grants{
					Resistances: []rules.DamageType{"fire"},
				},
			},
			{
				ID:        "stoneskin",
				Name:      "Stoneskin",
				Permanent: true,
				Grants: content.Grants{
					Resistances: []rules.DamageType{"slashing", "piercing", "bludgeoning"},
				},
			},
		},
	}
}

// NewRegistry builds the standard registry, failing the test on content errors
func NewRegistry(t *testing.T) content.Registry {
	t.Helper()
	registry, err := content.NewRegistry(StandardContent())
	require.NoError(t, err)
	return registry
}

// NewCombatant builds a deterministic combatant for the given side
func NewCombatant(id, faction string, hp, ac int) *combat.Combatant {
	return combat.NewCombatant(&combat.CombatantConfig{
		ID:               id,
		Name:             id,
		Faction:          faction,
		MaxHP:            hp,
		ArmorClass:       ac,
		Speed:            30,
		ProficiencyBonus: 2,
		UUIDGenerator:    uuid.NewSequentialGenerator(id),
	})
}
