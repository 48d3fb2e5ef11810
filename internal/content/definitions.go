package content

import (
	"github.com/Interzoneism/qdnd-sub006/internal/domain/shared"
	"github.com/Interzoneism/qdnd-sub006/internal/rules"
)

// EffectType is the closed set of effect variants the pipeline can resolve.
// An unknown type is a hard content error, never a silent no-op.
type EffectType string

const (
	EffectDamage          EffectType = "damage"
	EffectHeal            EffectType = "heal"
	EffectApplyStatus     EffectType = "apply_status"
	EffectRemoveStatus    EffectType = "remove_status"
	EffectForcedMove      EffectType = "forced_move"
	EffectTeleport        EffectType = "teleport"
	EffectSpawnSurface    EffectType = "spawn_surface"
	EffectRestoreResource EffectType = "restore_resource"
)

// KnownEffectTypes lists every effect variant the engine resolves
var KnownEffectTypes = []EffectType{
	EffectDamage,
	EffectHeal,
	EffectApplyStatus,
	EffectRemoveStatus,
	EffectForcedMove,
	EffectTeleport,
	EffectSpawnSurface,
	EffectRestoreResource,
}

// TargetingShape describes who an ability can be aimed at. Geometry (range,
// line of effect, cover) is resolved by the external targeting service.
type TargetingShape string

const (
	TargetSingle     TargetingShape = "single"
	TargetSelf       TargetingShape = "self"
	TargetAllEnemies TargetingShape = "all_enemies"
	TargetAllAllies  TargetingShape = "all_allies"
)

// EffectDefinition is one typed entry in an ability's ordered effect list
type EffectDefinition struct {
	Type EffectType `json:"type"`

	// Damage and heal effects
	Formula    string           `json:"formula,omitempty"`
	DamageType rules.DamageType `json:"damage_type,omitempty"`

	// Gate: attack roll or saving throw (at most one)
	AttackRoll  bool   `json:"attack_roll,omitempty"`
	SaveAbility string `json:"save_ability,omitempty"` // STR, DEX, CON, INT, WIS, CHA
	SaveDC      int    `json:"save_dc,omitempty"`      // 0 falls back to the ability's DC
	HalfOnSave  bool   `json:"half_on_save,omitempty"`

	// Status effects
	StatusID    string `json:"status_id,omitempty"`
	RemoveGroup string `json:"remove_group,omitempty"`

	// Forced move / teleport, in battlefield units
	Distance int `json:"distance,omitempty"`

	// Surfaces
	SurfaceID string `json:"surface_id,omitempty"`
	Radius    int    `json:"radius,omitempty"`

	// Resource restoration
	ResourceKey string `json:"resource_key,omitempty"`
	Amount      int    `json:"amount,omitempty"`
}

// AbilityDefinition is resolved content: an ordered list of typed effects
// plus a resource cost and targeting shape. Consumed read-only.
type AbilityDefinition struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	ActionType shared.ActionType  `json:"action_type"`
	Cost       shared.ActionCost  `json:"cost"`
	Targeting  TargetingShape     `json:"targeting"`
	SaveDC     int                `json:"save_dc,omitempty"` // default DC for save effects
	Effects    []EffectDefinition `json:"effects"`
}

// EffectiveTargeting defaults omitted targeting to single
func (d *AbilityDefinition) EffectiveTargeting() TargetingShape {
	if d.Targeting == "" {
		return TargetSingle
	}
	return d.Targeting
}

// StackingPolicy governs repeated application of the same status: refresh
// duration or increment a bounded stack counter, never both.
type StackingPolicy string

const (
	StackingRefresh StackingPolicy = "refresh_duration"
	StackingStacks  StackingPolicy = "increment_stacks"
)

// TickTiming fixes when a status ticks: the holder's own turn start or end,
// never a global round trigger.
type TickTiming string

const (
	TickNone      TickTiming = "none"
	TickTurnStart TickTiming = "turn_start"
	TickTurnEnd   TickTiming = "turn_end"
)

// Grants describes the passive adjustments an active status confers. The
// rules engine queries these live on every application; nothing is cached at
// apply time.
type Grants struct {
	Resistances     []rules.DamageType  `json:"resistances,omitempty"`
	Immunities      []rules.DamageType  `json:"immunities,omitempty"`
	Vulnerabilities []rules.DamageType  `json:"vulnerabilities,omitempty"`
	AttackBonus     int                 `json:"attack_bonus,omitempty"`
	ACBonus         int                 `json:"ac_bonus,omitempty"`
	SaveBonus       int                 `json:"save_bonus,omitempty"`
	ExtraActions    []shared.ActionType `json:"extra_actions,omitempty"` // haste-style restricted slot
}

// StatusDefinition is resolved content for a timed condition
type StatusDefinition struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	MaxStacks int            `json:"max_stacks,omitempty"` // 0 means 1
	Stacking  StackingPolicy `json:"stacking,omitempty"`

	// Duration in the holder's turns; Permanent means until explicitly removed
	DurationTurns int  `json:"duration_turns,omitempty"`
	Permanent     bool `json:"permanent,omitempty"`

	TickTiming     TickTiming       `json:"tick_timing,omitempty"`
	TickFormula    string           `json:"tick_formula,omitempty"` // per stack; dice count scales
	TickDamageType rules.DamageType `json:"tick_damage_type,omitempty"`
	TickHeals      bool             `json:"tick_heals,omitempty"`

	// Removal matching: an explicit remove-event targets a group; linked
	// groups are removed atomically alongside this status
	RemovalGroup string   `json:"removal_group,omitempty"`
	LinkedGroups []string `json:"linked_groups,omitempty"`

	// Concentration statuses are exclusive per caster
	Concentration bool `json:"concentration,omitempty"`

	Grants Grants `json:"grants,omitempty"`

	// Functors executed on lifecycle transitions
	OnApply  []EffectDefinition `json:"on_apply,omitempty"`
	OnRemove []EffectDefinition `json:"on_remove,omitempty"`
}

// EffectiveMaxStacks returns the stack bound, defaulting to 1
func (d *StatusDefinition) EffectiveMaxStacks() int {
	if d.MaxStacks < 1 {
		return 1
	}
	return d.MaxStacks
}

// EffectiveTickTiming defaults omitted tick timing to turn start
func (d *StatusDefinition) EffectiveTickTiming() TickTiming {
	if d.TickTiming == "" {
		return TickTurnStart
	}
	return d.TickTiming
}
