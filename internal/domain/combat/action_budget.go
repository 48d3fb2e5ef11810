package combat

import (
	"github.com/Interzoneism/qdnd-sub006/internal/domain/shared"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// GrantedSlot is an extra action granted by a status (haste), independently
// tracked and restricted to a subset of action types rather than being a
// generic second action.
type GrantedSlot struct {
	SourceID string              `json:"source_id"` // status instance that granted it
	Allowed  []shared.ActionType `json:"allowed"`
	Used     bool                `json:"used"`
}

// Allows reports whether the slot can cover the given action type
func (s *GrantedSlot) Allows(actionType shared.ActionType) bool {
	if s.Used {
		return false
	}
	for _, allowed := range s.Allowed {
		if allowed == actionType {
			return true
		}
	}
	return false
}

// ActionBudget tracks available actions for a combatant during a turn. A
// resource only moves from available to consumed; it returns only via
// ResetForOwnTurnStart.
type ActionBudget struct {
	ActionUsed      bool `json:"action_used"`
	BonusActionUsed bool `json:"bonus_action_used"`
	ReactionUsed    bool `json:"reaction_used"`
	MovementUsed    int  `json:"movement_used"`
	MovementMax     int  `json:"movement_max"`

	// Extra slots granted by statuses, reset with the turn
	GrantedSlots []*GrantedSlot `json:"granted_slots,omitempty"`
}

// NewActionBudget creates a fresh budget with the given movement allowance
func NewActionBudget(movementMax int) *ActionBudget {
	return &ActionBudget{MovementMax: movementMax}
}

// MovementRemaining returns the unspent movement for this turn
func (b *ActionBudget) MovementRemaining() int {
	remaining := b.MovementMax - b.MovementUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanAfford reports whether every resource in the cost is currently
// available. The action slot may be covered by a granted slot when the
// action type is in its allowed subset.
func (b *ActionBudget) CanAfford(cost shared.ActionCost, actionType shared.ActionType) bool {
	if cost.Action && b.ActionUsed && b.grantedSlotFor(actionType) == nil {
		return false
	}
	if cost.BonusAction && b.BonusActionUsed {
		return false
	}
	if cost.Reaction && b.ReactionUsed {
		return false
	}
	if cost.Movement > b.MovementRemaining() {
		return false
	}
	return true
}

// Consume spends the cost all-or-nothing. If any required resource is
// unavailable nothing is spent and an insufficient resources error returns.
func (b *ActionBudget) Consume(cost shared.ActionCost, actionType shared.ActionType) error {
	if !b.CanAfford(cost, actionType) {
		return engerr.InsufficientResourcesf("action budget cannot cover cost for %s", actionType)
	}

	if cost.Action {
		if b.ActionUsed {
			// CanAfford guaranteed a granted slot covers it
			slot := b.grantedSlotFor(actionType)
			if slot == nil {
				return engerr.Internal("granted slot vanished between check and consume")
			}
			slot.Used = true
		} else {
			b.ActionUsed = true
		}
	}
	if cost.BonusAction {
		b.BonusActionUsed = true
	}
	if cost.Reaction {
		b.ReactionUsed = true
	}
	if cost.Movement > 0 {
		b.MovementUsed += cost.Movement
	}
	return nil
}

// ConsumeMovement spends movement incrementally as movement occurs, so a
// move interrupted by a reaction leaves an accurate remaining budget.
func (b *ActionBudget) ConsumeMovement(units int) error {
	if units < 0 {
		return engerr.InvalidArgumentf("negative movement %d", units)
	}
	if units > b.MovementRemaining() {
		return engerr.InsufficientResourcesf("movement %d exceeds remaining %d", units, b.MovementRemaining())
	}
	b.MovementUsed += units
	return nil
}

// ResetForOwnTurnStart restores the budget at the start of the owner's own
// turn. The reaction also resets here, not at the round boundary.
func (b *ActionBudget) ResetForOwnTurnStart() {
	b.ActionUsed = false
	b.BonusActionUsed = false
	b.ReactionUsed = false
	b.MovementUsed = 0
	for _, slot := range b.GrantedSlots {
		slot.Used = false
	}
}

// GrantSlot attaches an extra restricted action slot from a status
func (b *ActionBudget) GrantSlot(sourceID string, allowed []shared.ActionType) {
	b.GrantedSlots = append(b.GrantedSlots, &GrantedSlot{SourceID: sourceID, Allowed: allowed})
}

// RevokeSlot removes the slot granted by a status instance
func (b *ActionBudget) RevokeSlot(sourceID string) {
	kept := b.GrantedSlots[:0]
	for _, slot := range b.GrantedSlots {
		if slot.SourceID != sourceID {
			kept = append(kept, slot)
		}
	}
	b.GrantedSlots = kept
	if len(b.GrantedSlots) == 0 {
		b.GrantedSlots = nil
	}
}

func (b *ActionBudget) grantedSlotFor(actionType shared.ActionType) *GrantedSlot {
	for _, slot := range b.GrantedSlots {
		if slot.Allows(actionType) {
			return slot
		}
	}
	return nil
}
