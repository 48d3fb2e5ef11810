package status

import (
	"log"

	"github.com/Interzoneism/qdnd-sub006/internal/content"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
	"github.com/Interzoneism/qdnd-sub006/internal/rules"
	"github.com/Interzoneism/qdnd-sub006/internal/uuid"
)

// Ledger tracks active status instances for one holder. A combat instance is
// single-actor-at-a-time, so the ledger is owned and mutated by exactly one
// call path; instances are kept in application order to keep tick order and
// snapshots deterministic.
type Ledger struct {
	holderID  string
	instances []*Instance
	uuidGen   uuid.Generator
}

// NewLedger creates an empty ledger for a holder
func NewLedger(holderID string, uuidGen uuid.Generator) *Ledger {
	return &Ledger{
		holderID: holderID,
		uuidGen:  uuidGen,
	}
}

// Apply applies a status definition to the holder. A concentration
// definition first removes the caster's prior concentration anchor,
// synchronously, before the new instance is created. Repeated application of
// the same definition follows the stacking policy: refresh duration or
// increment stacks, never both. OnApply fires only for newly created
// instances.
func (l *Ledger) Apply(def *content.StatusDefinition, sourceID, anchorID string, hooks Hooks) (*Instance, error) {
	if def == nil {
		return nil, engerr.Content("nil status definition")
	}
	if hooks == nil {
		hooks = NopHooks{}
	}

	if def.Concentration {
		if err := l.RemoveConcentrationBySource(sourceID, hooks); err != nil {
			return nil, err
		}
	}

	if existing := l.Get(def.ID); existing != nil {
		switch def.Stacking {
		case content.StackingStacks:
			if existing.Stacks < 0 {
				return nil, engerr.Internalf("status %q has negative stack count %d", def.ID, existing.Stacks)
			}
			if existing.Stacks < def.EffectiveMaxStacks() {
				existing.Stacks++
			}
		default:
			// Refresh is the default policy
			existing.Remaining = def.DurationTurns
		}
		log.Printf("[STATUS] %s re-applied on %s (stacks=%d remaining=%d)",
			def.ID, l.holderID, existing.Stacks, existing.Remaining)
		return existing, nil
	}

	inst := &Instance{
		ID:           l.uuidGen.New(),
		DefinitionID: def.ID,
		SourceID:     sourceID,
		HolderID:     l.holderID,
		Remaining:    def.DurationTurns,
		Permanent:    def.Permanent,
		Stacks:       1,
		AnchorID:     anchorID,
		Def:          def,
	}
	l.instances = append(l.instances, inst)

	log.Printf("[STATUS] %s applied on %s by %s", def.ID, l.holderID, sourceID)

	if err := hooks.OnApply(inst); err != nil {
		return nil, engerr.Wrapf(err, "on-apply functor for status %q", def.ID)
	}
	return inst, nil
}

// Tick advances every instance whose definition ticks at the given timing:
// the tick functor runs first, then duration decrements, and an instance
// whose duration reaches zero is removed in the same tick cycle.
func (l *Ledger) Tick(timing content.TickTiming, hooks Hooks) error {
	if hooks == nil {
		hooks = NopHooks{}
	}

	// Instances applied during a tick (e.g. by a functor) must not tick in
	// the same cycle, so iterate over a copy.
	ticking := append([]*Instance{}, l.instances...)
	for _, inst := range ticking {
		if l.Get(inst.DefinitionID) == nil {
			continue // removed earlier in this cycle
		}
		if inst.Def.EffectiveTickTiming() != timing {
			continue
		}
		if inst.Stacks < 0 {
			return engerr.Internalf("status %q has negative stack count %d", inst.DefinitionID, inst.Stacks)
		}

		if inst.Def.TickFormula != "" {
			if err := hooks.OnTick(inst); err != nil {
				return engerr.Wrapf(err, "tick functor for status %q", inst.DefinitionID)
			}
		}

		if inst.Permanent {
			continue
		}
		inst.Remaining--
		if inst.Remaining <= 0 {
			if err := l.removeInstance(inst, hooks); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveByGroup removes every instance whose definition matches the removal
// group, firing on-remove functors. Returns the number removed.
func (l *Ledger) RemoveByGroup(group string, hooks Hooks) (int, error) {
	if group == "" {
		return 0, nil
	}
	if hooks == nil {
		hooks = NopHooks{}
	}

	removed := 0
	for {
		var match *Instance
		for _, inst := range l.instances {
			if inst.Def.RemovalGroup == group {
				match = inst
				break
			}
		}
		if match == nil {
			return removed, nil
		}
		if err := l.removeInstance(match, hooks); err != nil {
			return removed, err
		}
		removed++
	}
}

// RemoveInstance removes a single instance by id
func (l *Ledger) RemoveInstance(id string, hooks Hooks) error {
	for _, inst := range l.instances {
		if inst.ID == id {
			return l.removeInstance(inst, hooks)
		}
	}
	return engerr.NotFoundf("status instance %q not on holder %s", id, l.holderID)
}

// RemoveAnchored removes every instance linked to the given concentration
// anchor id
func (l *Ledger) RemoveAnchored(anchorID string, hooks Hooks) error {
	if anchorID == "" {
		return nil
	}
	for {
		var match *Instance
		for _, inst := range l.instances {
			if inst.AnchorID == anchorID {
				match = inst
				break
			}
		}
		if match == nil {
			return nil
		}
		if err := l.removeInstance(match, hooks); err != nil {
			return err
		}
	}
}

// RemoveConcentrationBySource removes the caster's concentration anchor from
// this ledger, if present. The caller is responsible for sweeping anchored
// instances on other holders.
func (l *Ledger) RemoveConcentrationBySource(sourceID string, hooks Hooks) error {
	for _, inst := range l.instances {
		if inst.IsConcentrationAnchor() && inst.SourceID == sourceID {
			return l.removeInstance(inst, hooks)
		}
	}
	return nil
}

// ConcentrationBySource returns the caster's concentration anchor on this
// ledger, or nil
func (l *Ledger) ConcentrationBySource(sourceID string) *Instance {
	for _, inst := range l.instances {
		if inst.IsConcentrationAnchor() && inst.SourceID == sourceID {
			return inst
		}
	}
	return nil
}

// RemoveAll clears the ledger when the holder leaves combat, firing
// on-remove functors for each instance
func (l *Ledger) RemoveAll(hooks Hooks) error {
	for len(l.instances) > 0 {
		if err := l.removeInstance(l.instances[0], hooks); err != nil {
			return err
		}
	}
	return nil
}

// removeInstance detaches an instance and fires its on-remove functor, then
// removes any tag-linked groups atomically.
func (l *Ledger) removeInstance(inst *Instance, hooks Hooks) error {
	if hooks == nil {
		hooks = NopHooks{}
	}

	found := false
	for i, candidate := range l.instances {
		if candidate.ID == inst.ID {
			l.instances = append(l.instances[:i], l.instances[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil // already removed by a linked-group sweep
	}

	log.Printf("[STATUS] %s removed from %s", inst.DefinitionID, l.holderID)

	if err := hooks.OnRemove(inst); err != nil {
		return engerr.Wrapf(err, "on-remove functor for status %q", inst.DefinitionID)
	}

	for _, group := range inst.Def.LinkedGroups {
		if _, err := l.RemoveByGroup(group, hooks); err != nil {
			return err
		}
	}
	return nil
}

// Active returns the current instances in application order
func (l *Ledger) Active() []*Instance {
	out := make([]*Instance, len(l.instances))
	copy(out, l.instances)
	return out
}

// Get returns the instance for a definition id, or nil
func (l *Ledger) Get(definitionID string) *Instance {
	for _, inst := range l.instances {
		if inst.DefinitionID == definitionID {
			return inst
		}
	}
	return nil
}

// Has reports whether a definition is active on the holder
func (l *Ledger) Has(definitionID string) bool {
	return l.Get(definitionID) != nil
}

// ResistanceFor computes the holder's current resistance level for a damage
// type from active statuses. Queried on every damage application; a
// resistance-granting condition is never self-enforcing.
func (l *Ledger) ResistanceFor(damageType rules.DamageType) rules.ResistanceLevel {
	resistant, vulnerable := false, false
	for _, inst := range l.instances {
		grants := inst.Def.Grants
		if containsDamageType(grants.Immunities, damageType) {
			return rules.Immune
		}
		if containsDamageType(grants.Resistances, damageType) {
			resistant = true
		}
		if containsDamageType(grants.Vulnerabilities, damageType) {
			vulnerable = true
		}
	}
	switch {
	case resistant && vulnerable:
		return rules.ResistanceNone
	case resistant:
		return rules.Resistant
	case vulnerable:
		return rules.Vulnerable
	default:
		return rules.ResistanceNone
	}
}

// AttackModifiers collects flat attack bonuses granted by active statuses
func (l *Ledger) AttackModifiers() []rules.Modifier {
	var mods []rules.Modifier
	for _, inst := range l.instances {
		if bonus := inst.Def.Grants.AttackBonus; bonus != 0 {
			mods = append(mods, rules.Flat(inst.Def.Name, bonus, inst.DefinitionID))
		}
	}
	return mods
}

// SaveModifiers collects flat saving-throw bonuses granted by active statuses
func (l *Ledger) SaveModifiers() []rules.Modifier {
	var mods []rules.Modifier
	for _, inst := range l.instances {
		if bonus := inst.Def.Grants.SaveBonus; bonus != 0 {
			mods = append(mods, rules.Flat(inst.Def.Name, bonus, inst.DefinitionID))
		}
	}
	return mods
}

// ACBonus sums flat AC bonuses granted by active statuses
func (l *Ledger) ACBonus() int {
	total := 0
	for _, inst := range l.instances {
		total += inst.Def.Grants.ACBonus
	}
	return total
}

// SnapshotAll returns the plain serializable form of the ledger
func (l *Ledger) SnapshotAll() []Snapshot {
	out := make([]Snapshot, 0, len(l.instances))
	for _, inst := range l.instances {
		out = append(out, Snapshot{
			ID:           inst.ID,
			DefinitionID: inst.DefinitionID,
			SourceID:     inst.SourceID,
			Remaining:    inst.Remaining,
			Permanent:    inst.Permanent,
			Stacks:       inst.Stacks,
			AnchorID:     inst.AnchorID,
		})
	}
	return out
}

func containsDamageType(list []rules.DamageType, dt rules.DamageType) bool {
	for _, candidate := range list {
		if candidate == dt || candidate == "all" {
			return true
		}
	}
	return false
}
