package combat

import (
	"github.com/Interzoneism/qdnd-sub006/internal/domain/shared"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// SlotPool tracks spell slots at one level
type SlotPool struct {
	Max  int `json:"max"`
	Used int `json:"used"`
}

// Remaining returns unspent slots
func (p *SlotPool) Remaining() int {
	return p.Max - p.Used
}

// ChargePool tracks a named per-encounter charge resource
type ChargePool struct {
	Max  int `json:"max"`
	Used int `json:"used"`
}

// Remaining returns unspent charges
func (p *ChargePool) Remaining() int {
	return p.Max - p.Used
}

// ResourcePool is a combatant's expendable resources beyond the action
// budget: spell slots by level and named charge pools.
type ResourcePool struct {
	SpellSlots map[int]*SlotPool      `json:"spell_slots,omitempty"`
	Charges    map[string]*ChargePool `json:"charges,omitempty"`
}

// NewResourcePool creates an empty resource pool
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		SpellSlots: make(map[int]*SlotPool),
		Charges:    make(map[string]*ChargePool),
	}
}

// SetSpellSlots configures the slot pool at a level
func (r *ResourcePool) SetSpellSlots(level, max int) {
	r.SpellSlots[level] = &SlotPool{Max: max}
}

// SetCharges configures a named charge pool
func (r *ResourcePool) SetCharges(key string, max int) {
	r.Charges[key] = &ChargePool{Max: max}
}

// CanPay reports whether the slot/charge portion of a cost is covered
func (r *ResourcePool) CanPay(cost shared.ActionCost) bool {
	if cost.SlotLevel > 0 {
		pool, exists := r.SpellSlots[cost.SlotLevel]
		if !exists || pool.Remaining() < 1 {
			return false
		}
	}
	if cost.Charges > 0 {
		pool, exists := r.Charges[cost.ChargeKey]
		if !exists || pool.Remaining() < cost.Charges {
			return false
		}
	}
	return true
}

// Pay spends the slot/charge portion of a cost, all-or-nothing
func (r *ResourcePool) Pay(cost shared.ActionCost) error {
	if !r.CanPay(cost) {
		return engerr.InsufficientResources("resource pool cannot cover cost")
	}
	if cost.SlotLevel > 0 {
		r.SpellSlots[cost.SlotLevel].Used++
	}
	if cost.Charges > 0 {
		r.Charges[cost.ChargeKey].Used += cost.Charges
	}
	return nil
}

// Restore returns uses to a named charge pool, clamped to its max
func (r *ResourcePool) Restore(key string, amount int) error {
	pool, exists := r.Charges[key]
	if !exists {
		return engerr.NotFoundf("charge pool %q", key)
	}
	pool.Used -= amount
	if pool.Used < 0 {
		pool.Used = 0
	}
	return nil
}

// RestoreSpellSlot returns one slot at a level, clamped to its max
func (r *ResourcePool) RestoreSpellSlot(level int) error {
	pool, exists := r.SpellSlots[level]
	if !exists {
		return engerr.NotFoundf("spell slot level %d", level)
	}
	if pool.Used > 0 {
		pool.Used--
	}
	return nil
}
