package events

import (
	"github.com/Interzoneism/qdnd-sub006/internal/rules"
)

// Type is the closed set of rule event variants. Dispatch over these is
// exhaustive; an unrecognized type is a content error, never a fallthrough.
type Type string

const (
	// Pre events describe something about to happen; reactions may modify
	// the outcome or cancel the item carrying it
	TypeActionDeclared     Type = "action_declared"
	TypeDamageAboutToApply Type = "damage_about_to_apply"
	TypeHealAboutToApply   Type = "heal_about_to_apply"
	TypeStatusAboutToApply Type = "status_about_to_apply"
	TypeMoveAboutToApply   Type = "move_about_to_apply"

	// Post events describe something that happened; they feed chained
	// reactions and external telemetry
	TypeActionCompleted  Type = "action_completed"
	TypeAttackResolved   Type = "attack_resolved"
	TypeDamageApplied    Type = "damage_applied"
	TypeHealApplied      Type = "heal_applied"
	TypeStatusApplied    Type = "status_applied"
	TypeStatusRemoved    Type = "status_removed"
	TypeMoved            Type = "moved"
	TypeSurfaceSpawned   Type = "surface_spawned"
	TypeResourceRestored Type = "resource_restored"
)

// Outcome is the one mutable field of a RuleEvent: reactions attached while
// the event sits on the resolution stack may adjust it before resolution.
type Outcome struct {
	Amount     int              `json:"amount,omitempty"`
	DamageType rules.DamageType `json:"damage_type,omitempty"`
	StatusID   string           `json:"status_id,omitempty"`
	Distance   int              `json:"distance,omitempty"`
}

// RuleEvent describes something about to happen or having happened. The
// descriptive fields are immutable once dispatched; only Outcome may be
// adjusted by reactions, and cancellation lives on the stack item, not here.
type RuleEvent struct {
	ID          string  `json:"id"`
	Type        Type    `json:"type"`
	ActorID     string  `json:"actor_id"`
	TargetID    string  `json:"target_id,omitempty"`
	AbilityID   string  `json:"ability_id,omitempty"`
	Cancellable bool    `json:"cancellable"`
	Outcome     Outcome `json:"outcome"`
}

// IsPre reports whether the event describes a pending application
func (e *RuleEvent) IsPre() bool {
	switch e.Type {
	case TypeActionDeclared, TypeDamageAboutToApply, TypeHealAboutToApply,
		TypeStatusAboutToApply, TypeMoveAboutToApply:
		return true
	}
	return false
}
