package status

import (
	"github.com/Interzoneism/qdnd-sub006/internal/content"
)

// Instance is an applied condition on one holder. Two applications of the
// same status either refresh duration or increment stacks per the
// definition's stacking policy, never both.
type Instance struct {
	ID           string `json:"id"`
	DefinitionID string `json:"definition_id"`
	SourceID     string `json:"source_id"` // combatant that applied it
	HolderID     string `json:"holder_id"`

	// Remaining is in the holder's own turns; ignored when Permanent
	Remaining int  `json:"remaining"`
	Permanent bool `json:"permanent"`

	Stacks int `json:"stacks"`

	// AnchorID links this instance to a concentration anchor; breaking the
	// anchor removes everything linked to it, on any holder
	AnchorID string `json:"anchor_id,omitempty"`

	// Payload carries definition-specific structured data
	Payload map[string]any `json:"payload,omitempty"`

	// Def is the resolved definition, shared read-only
	Def *content.StatusDefinition `json:"-"`
}

// IsConcentrationAnchor reports whether this instance is the caster's
// concentration anchor
func (i *Instance) IsConcentrationAnchor() bool {
	return i.Def != nil && i.Def.Concentration
}

// Snapshot is the plain serializable form of an Instance
type Snapshot struct {
	ID           string `json:"id"`
	DefinitionID string `json:"definition_id"`
	SourceID     string `json:"source_id"`
	Remaining    int    `json:"remaining"`
	Permanent    bool   `json:"permanent"`
	Stacks       int    `json:"stacks"`
	AnchorID     string `json:"anchor_id,omitempty"`
}

// Hooks receives lifecycle transitions so the effect pipeline can execute
// the definition's functors (on-apply boosts, DOT ticks, on-remove cleanup).
// Hooks run synchronously inside the transition.
type Hooks interface {
	// OnApply fires once when a new instance is created, before it is
	// visible to ticks. Not fired on refresh or stack increment.
	OnApply(inst *Instance) error

	// OnTick fires at the holder's tick point for definitions with a tick
	// formula, before the duration decrements
	OnTick(inst *Instance) error

	// OnRemove fires exactly once when an instance leaves the ledger
	OnRemove(inst *Instance) error
}

// NopHooks is the no-op Hooks implementation
type NopHooks struct{}

func (NopHooks) OnApply(*Instance) error  { return nil }
func (NopHooks) OnTick(*Instance) error   { return nil }
func (NopHooks) OnRemove(*Instance) error { return nil }
