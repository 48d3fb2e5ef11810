package resolution

import (
	"log"

	"github.com/Interzoneism/qdnd-sub006/internal/content"
	"github.com/Interzoneism/qdnd-sub006/internal/dice"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/combat"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/events"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/status"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
	"github.com/Interzoneism/qdnd-sub006/internal/rules"
)

// ledgerHooks runs status lifecycle functors through the pipeline so that
// on-apply boosts, periodic ticks, and on-remove cleanup flow through the
// same application paths as direct effects.
type ledgerHooks struct {
	s *Service
}

// hooks returns the lifecycle adapter for status ledgers
func (s *Service) hooks() status.Hooks {
	return &ledgerHooks{s: s}
}

// Hooks exposes the lifecycle adapter so turn drivers can tick ledgers
// through the pipeline
func (s *Service) Hooks() status.Hooks {
	return s.hooks()
}

// OnApply implements status.Hooks. It runs only for new instances, never on
// refresh or stack increment.
func (h *ledgerHooks) OnApply(inst *status.Instance) error {
	holder, err := h.s.world.Combatant(inst.HolderID)
	if err != nil {
		return err
	}

	if len(inst.Def.Grants.ExtraActions) > 0 {
		holder.Budget.GrantSlot(inst.ID, inst.Def.Grants.ExtraActions)
	}

	source := h.sourceOrHolder(inst, holder)
	for i := range inst.Def.OnApply {
		if err := h.s.applyFunctor(source, holder, &inst.Def.OnApply[i]); err != nil {
			return err
		}
	}

	return h.s.publishPost(events.TypeStatusApplied, inst.SourceID, inst.HolderID, events.Outcome{
		StatusID: inst.DefinitionID,
	})
}

// OnTick implements status.Hooks: the periodic functor runs before the
// duration decrements. Stacked statuses scale the dice count, producing a
// single combined event per tick.
func (h *ledgerHooks) OnTick(inst *status.Instance) error {
	holder, err := h.s.world.Combatant(inst.HolderID)
	if err != nil {
		return err
	}

	formula, err := h.s.registry.Formula(inst.Def.TickFormula)
	if err != nil {
		return err
	}

	stacks := inst.Stacks
	if stacks < 1 {
		stacks = 1
	}
	scaled := dice.Formula{
		Count: formula.Count * stacks,
		Sides: formula.Sides,
		Bonus: formula.Bonus,
	}

	source := h.sourceOrHolder(inst, holder)

	if inst.Def.TickHeals {
		roll, err := scaled.Roll(h.s.roller)
		if err != nil {
			return err
		}
		healed := holder.Heal(roll.Total)
		return h.s.publishPost(events.TypeHealApplied, source.ID, holder.ID, events.Outcome{Amount: healed})
	}

	resistance := holder.Statuses.ResistanceFor(inst.Def.TickDamageType)
	damage, err := rules.RollDamage(h.s.roller, scaled, nil, resistance)
	if err != nil {
		return err
	}
	applied := holder.ApplyDamage(damage.Mitigated)

	log.Printf("[STATUS] %s ticks %d %s on %s (stacks=%d)",
		inst.DefinitionID, applied, inst.Def.TickDamageType, holder.ID, stacks)

	if err := h.s.publishPost(events.TypeDamageApplied, source.ID, holder.ID, events.Outcome{
		Amount:     applied,
		DamageType: inst.Def.TickDamageType,
	}); err != nil {
		return err
	}
	if applied > 0 {
		return h.s.checkConcentration(holder, applied)
	}
	return nil
}

// OnRemove implements status.Hooks; it fires exactly once per instance
func (h *ledgerHooks) OnRemove(inst *status.Instance) error {
	holder, err := h.s.world.Combatant(inst.HolderID)
	if err != nil {
		return err
	}

	if len(inst.Def.Grants.ExtraActions) > 0 {
		holder.Budget.RevokeSlot(inst.ID)
	}

	source := h.sourceOrHolder(inst, holder)
	for i := range inst.Def.OnRemove {
		if err := h.s.applyFunctor(source, holder, &inst.Def.OnRemove[i]); err != nil {
			return err
		}
	}

	return h.s.publishPost(events.TypeStatusRemoved, inst.SourceID, inst.HolderID, events.Outcome{
		StatusID: inst.DefinitionID,
	})
}

// sourceOrHolder resolves the applying combatant, falling back to the holder
// for environment-applied statuses whose source has left the encounter
func (h *ledgerHooks) sourceOrHolder(inst *status.Instance, holder *combat.Combatant) *combat.Combatant {
	source, err := h.s.world.Combatant(inst.SourceID)
	if err != nil {
		return holder
	}
	return source
}

// applyFunctor applies one lifecycle effect immediately. Functors run inside
// a status transition, so there is no reaction window and no gate rolls.
func (s *Service) applyFunctor(source, holder *combat.Combatant, effect *content.EffectDefinition) error {
	switch effect.Type {
	case content.EffectDamage:
		formula, err := s.registry.Formula(effect.Formula)
		if err != nil {
			return err
		}
		resistance := holder.Statuses.ResistanceFor(effect.DamageType)
		damage, err := rules.RollDamage(s.roller, formula, nil, resistance)
		if err != nil {
			return err
		}
		applied := holder.ApplyDamage(damage.Mitigated)
		if err := s.publishPost(events.TypeDamageApplied, source.ID, holder.ID, events.Outcome{
			Amount:     applied,
			DamageType: effect.DamageType,
		}); err != nil {
			return err
		}
		if applied > 0 {
			return s.checkConcentration(holder, applied)
		}
		return nil

	case content.EffectHeal:
		formula, err := s.registry.Formula(effect.Formula)
		if err != nil {
			return err
		}
		roll, err := formula.Roll(s.roller)
		if err != nil {
			return err
		}
		healed := holder.Heal(roll.Total)
		return s.publishPost(events.TypeHealApplied, source.ID, holder.ID, events.Outcome{Amount: healed})

	case content.EffectApplyStatus:
		def, err := s.registry.Status(effect.StatusID)
		if err != nil {
			return err
		}
		_, err = holder.Statuses.Apply(def, source.ID, "", s.hooks())
		return err

	case content.EffectRemoveStatus:
		_, err := holder.Statuses.RemoveByGroup(effect.RemoveGroup, s.hooks())
		return err

	case content.EffectRestoreResource:
		if err := holder.Resources.Restore(effect.ResourceKey, effect.Amount); err != nil {
			if engerr.IsNotFound(err) {
				return nil
			}
			return err
		}
		return s.publishPost(events.TypeResourceRestored, source.ID, holder.ID, events.Outcome{Amount: effect.Amount})

	case content.EffectForcedMove, content.EffectTeleport, content.EffectSpawnSurface:
		if s.battlefield == nil {
			return engerr.Internal("no battlefield delegate for movement functor")
		}
		switch effect.Type {
		case content.EffectForcedMove:
			pos, err := s.battlefield.ForcedMove(source.ID, holder.ID, effect.Distance)
			if err != nil {
				return err
			}
			holder.Position = pos
		case content.EffectTeleport:
			pos, err := s.battlefield.Teleport(holder.ID, effect.Distance)
			if err != nil {
				return err
			}
			holder.Position = pos
		case content.EffectSpawnSurface:
			return s.battlefield.SpawnSurface(effect.SurfaceID, holder.ID, effect.Radius)
		}
		return nil

	default:
		return engerr.Contentf("unknown functor effect type %q", effect.Type)
	}
}

// checkConcentration rolls a CON save for every concentration anchor the
// damaged combatant holds. Only damage triggers the check; the DC scales
// with the damage actually applied. A failed save removes the anchor and
// sweeps every anchored status off every holder.
func (s *Service) checkConcentration(target *combat.Combatant, damage int) error {
	var anchors []*status.Instance
	for _, inst := range target.Statuses.Active() {
		if inst.IsConcentrationAnchor() {
			anchors = append(anchors, inst)
		}
	}
	if len(anchors) == 0 {
		return nil
	}

	dc := rules.ConcentrationDC(damage)
	for _, anchor := range anchors {
		mods := append([]rules.Modifier{
			rules.Flat("CON", target.AbilityModifier(combat.CON), "ability"),
		}, target.Statuses.SaveModifiers()...)

		save, err := rules.RollSave(s.roller, mods, dc, rules.AdvantageNone)
		if err != nil {
			return err
		}
		if save.Success {
			continue
		}

		log.Printf("[RESOLVE] %s loses concentration on %s (DC %d, rolled %d)",
			target.ID, anchor.DefinitionID, dc, save.Total)

		anchorID := anchor.ID
		if err := target.Statuses.RemoveInstance(anchor.ID, s.hooks()); err != nil {
			return err
		}
		if err := s.sweepAnchored(anchorID); err != nil {
			return err
		}
	}
	return nil
}

// displaceConcentration removes the caster's existing anchor before a new
// concentration status applies: the old effect ends, and everything anchored
// to it anywhere on the field ends with it, before the new one begins.
func (s *Service) displaceConcentration(caster *combat.Combatant) error {
	old := caster.Statuses.ConcentrationBySource(caster.ID)
	if old == nil {
		return nil
	}
	oldID := old.ID
	if err := caster.Statuses.RemoveInstance(old.ID, s.hooks()); err != nil {
		return err
	}
	return s.sweepAnchored(oldID)
}

// sweepAnchored removes every status anchored to the broken anchor from
// every combatant, in deterministic world order
func (s *Service) sweepAnchored(anchorID string) error {
	for _, c := range s.world.Combatants() {
		if err := c.Statuses.RemoveAnchored(anchorID, s.hooks()); err != nil {
			return err
		}
	}
	return nil
}
