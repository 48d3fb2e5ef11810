package resolution

import (
	"log"

	"github.com/Interzoneism/qdnd-sub006/internal/content"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/combat"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/events"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
	"github.com/Interzoneism/qdnd-sub006/internal/rules"
)

// computeEffect rolls the effect's gates and amount, then pushes its pre
// event on the stack so reactions can adjust or cancel it. A blocked gate
// (miss, save negates) returns a skipped outcome instead of a staged effect.
// Effects with no pre window come back with a nil item and apply directly.
func (s *Service) computeEffect(source *combat.Combatant, ability *content.AbilityDefinition, effect *content.EffectDefinition, targetID string, parent *Item) (*stagedEffect, *EffectOutcome, error) {
	target, err := s.world.Combatant(targetID)
	if err != nil {
		return nil, nil, err
	}

	staged := &stagedEffect{effect: effect, targetID: targetID}
	outcome := events.Outcome{}
	var preType events.Type

	switch effect.Type {
	case content.EffectDamage, content.EffectHeal:
		formula, err := s.registry.Formula(effect.Formula)
		if err != nil {
			return nil, nil, err
		}

		if effect.AttackRoll {
			mods := append([]rules.Modifier{
				rules.Flat("proficiency", source.ProficiencyBonus, source.ID),
			}, source.Statuses.AttackModifiers()...)

			attack, err := rules.RollAttack(s.roller, rules.AttackInput{
				AttackerMods: mods,
				DefenderAC:   target.EffectiveAC(),
				Advantage:    rules.AdvantageNone,
				CritImmune:   target.CritImmune,
			})
			if err != nil {
				return nil, nil, err
			}
			staged.attack = attack

			if err := s.stream.Publish(&events.RuleEvent{
				ID:        s.uuidGen.New(),
				Type:      events.TypeAttackResolved,
				ActorID:   source.ID,
				TargetID:  targetID,
				AbilityID: ability.ID,
				Outcome:   events.Outcome{Amount: attack.Total},
			}); err != nil {
				return nil, nil, err
			}

			if !attack.Hit {
				return nil, &EffectOutcome{
					Type:       effect.Type,
					TargetID:   targetID,
					Attack:     attack,
					Skipped:    true,
					SkipReason: "attack missed",
				}, nil
			}
		}

		resistance := rules.ResistanceNone
		if effect.Type == content.EffectDamage {
			// Queried live on every application, never cached
			resistance = target.Statuses.ResistanceFor(effect.DamageType)
		}

		var damage *rules.DamageResult
		if staged.attack != nil && staged.attack.Critical {
			damage, err = rules.RollCriticalDamage(s.roller, formula, nil, resistance)
		} else {
			damage, err = rules.RollDamage(s.roller, formula, nil, resistance)
		}
		if err != nil {
			return nil, nil, err
		}
		amount := damage.Mitigated

		if effect.SaveAbility != "" {
			dc := effect.SaveDC
			if dc == 0 {
				dc = ability.SaveDC
			}
			saveMods := append([]rules.Modifier{
				rules.Flat("ability", target.AbilityModifier(combat.Ability(effect.SaveAbility)), effect.SaveAbility),
			}, target.Statuses.SaveModifiers()...)

			save, err := rules.RollSave(s.roller, saveMods, dc, rules.AdvantageNone)
			if err != nil {
				return nil, nil, err
			}
			staged.save = save

			if save.Success {
				if !effect.HalfOnSave {
					return nil, &EffectOutcome{
						Type:       effect.Type,
						TargetID:   targetID,
						Save:       save,
						Skipped:    true,
						SkipReason: "save negated",
					}, nil
				}
				// Half may be zero; it is never floored to one
				amount = rules.HalveOnSave(amount)
			}
		}

		outcome.Amount = amount
		outcome.DamageType = effect.DamageType
		if effect.Type == content.EffectDamage {
			preType = events.TypeDamageAboutToApply
		} else {
			preType = events.TypeHealAboutToApply
		}

	case content.EffectApplyStatus:
		outcome.StatusID = effect.StatusID
		preType = events.TypeStatusAboutToApply

	case content.EffectForcedMove, content.EffectTeleport:
		outcome.Distance = effect.Distance
		preType = events.TypeMoveAboutToApply

	case content.EffectRemoveStatus, content.EffectSpawnSurface, content.EffectRestoreResource:
		// No pre window; these apply directly
		return staged, nil, nil

	default:
		return nil, nil, engerr.Contentf("unknown effect type %q", effect.Type)
	}

	event := &events.RuleEvent{
		ID:          s.uuidGen.New(),
		Type:        preType,
		ActorID:     source.ID,
		TargetID:    targetID,
		AbilityID:   ability.ID,
		Cancellable: true,
		Outcome:     outcome,
	}
	item, err := s.stack.Push(parent, event)
	if err != nil {
		return nil, nil, err
	}
	if err := s.stream.Publish(event); err != nil {
		return nil, nil, err
	}
	staged.item = item
	return staged, nil, nil
}

// applyEffect commits a staged effect to the world and publishes its post
// event. Reactions have already had their window; the event outcome carries
// any adjustments they made.
func (s *Service) applyEffect(source *combat.Combatant, staged *stagedEffect, anchorID *string) (*EffectOutcome, error) {
	effect := staged.effect
	target, err := s.world.Combatant(staged.targetID)
	if err != nil {
		return nil, err
	}

	eo := &EffectOutcome{
		Type:     effect.Type,
		TargetID: staged.targetID,
		Attack:   staged.attack,
		Save:     staged.save,
	}

	switch effect.Type {
	case content.EffectDamage:
		amount := staged.item.Event.Outcome.Amount
		applied := target.ApplyDamage(amount)
		eo.Damage = applied
		eo.DamageType = effect.DamageType

		if err := s.publishPost(events.TypeDamageApplied, source.ID, target.ID, events.Outcome{
			Amount:     applied,
			DamageType: effect.DamageType,
		}); err != nil {
			return nil, err
		}
		if applied > 0 {
			if err := s.checkConcentration(target, applied); err != nil {
				return nil, err
			}
		}

	case content.EffectHeal:
		amount := staged.item.Event.Outcome.Amount
		healed := target.Heal(amount)
		eo.Healing = healed

		if err := s.publishPost(events.TypeHealApplied, source.ID, target.ID, events.Outcome{Amount: healed}); err != nil {
			return nil, err
		}

	case content.EffectApplyStatus:
		def, err := s.registry.Status(effect.StatusID)
		if err != nil {
			return nil, err
		}
		eo.StatusID = effect.StatusID

		holder := target
		if def.Concentration {
			// Concentration anchors sit on the caster regardless of target
			holder = source
			if err := s.displaceConcentration(source); err != nil {
				return nil, err
			}
		}

		anchor := ""
		if !def.Concentration && anchorID != nil {
			anchor = *anchorID
		}
		inst, err := holder.Statuses.Apply(def, source.ID, anchor, s.hooks())
		if err != nil {
			return nil, err
		}
		if def.Concentration && anchorID != nil {
			*anchorID = inst.ID
		}

	case content.EffectRemoveStatus:
		removed, err := target.Statuses.RemoveByGroup(effect.RemoveGroup, s.hooks())
		if err != nil {
			return nil, err
		}
		eo.StatusesRemoved = removed

	case content.EffectForcedMove, content.EffectTeleport:
		if s.battlefield == nil {
			return nil, engerr.Internal("no battlefield delegate for movement effect")
		}
		distance := staged.item.Event.Outcome.Distance

		var pos combat.Position
		if effect.Type == content.EffectForcedMove {
			pos, err = s.battlefield.ForcedMove(source.ID, target.ID, distance)
		} else {
			pos, err = s.battlefield.Teleport(target.ID, distance)
		}
		if err != nil {
			return nil, err
		}
		target.Position = pos
		eo.Position = &pos

		if err := s.publishPost(events.TypeMoved, source.ID, target.ID, events.Outcome{Distance: distance}); err != nil {
			return nil, err
		}

	case content.EffectSpawnSurface:
		if s.battlefield == nil {
			return nil, engerr.Internal("no battlefield delegate for surface effect")
		}
		if err := s.battlefield.SpawnSurface(effect.SurfaceID, target.ID, effect.Radius); err != nil {
			return nil, err
		}
		if err := s.publishPost(events.TypeSurfaceSpawned, source.ID, target.ID, events.Outcome{StatusID: effect.SurfaceID}); err != nil {
			return nil, err
		}

	case content.EffectRestoreResource:
		if err := target.Resources.Restore(effect.ResourceKey, effect.Amount); err != nil {
			if engerr.IsNotFound(err) {
				eo.Skipped = true
				eo.SkipReason = "no such resource pool"
				break
			}
			return nil, err
		}
		eo.Restored = effect.Amount
		if err := s.publishPost(events.TypeResourceRestored, source.ID, target.ID, events.Outcome{Amount: effect.Amount}); err != nil {
			return nil, err
		}

	default:
		return nil, engerr.Contentf("unknown effect type %q", effect.Type)
	}

	return eo, nil
}

// executeReaction resolves one taken reaction nested under its trigger. A
// reaction that would push past the depth ceiling is aborted alone; its cost
// stays spent and the rest of the resolution proceeds.
func (s *Service) executeReaction(outcome *ActionOutcome, offer ReactionOffer, trigger *Item) error {
	reactor, err := s.world.Combatant(offer.ReactorID)
	if err != nil {
		return err
	}
	ability, err := s.registry.Ability(offer.AbilityID)
	if err != nil {
		return err
	}

	if !reactor.Budget.CanAfford(ability.Cost, ability.ActionType) || !reactor.Resources.CanPay(ability.Cost) {
		log.Printf("[RESOLVE] %s offered %s but cannot pay; skipping", reactor.ID, ability.ID)
		return nil
	}
	if err := reactor.Budget.Consume(ability.Cost, ability.ActionType); err != nil {
		return err
	}
	if err := reactor.Resources.Pay(ability.Cost); err != nil {
		return err
	}

	ro := ReactionOutcome{ReactorID: offer.ReactorID, AbilityID: offer.AbilityID}

	reactionEvent := &events.RuleEvent{
		ID:          s.uuidGen.New(),
		Type:        events.TypeActionDeclared,
		ActorID:     reactor.ID,
		AbilityID:   ability.ID,
		Cancellable: true,
	}
	item, err := s.stack.Push(trigger, reactionEvent)
	if engerr.IsDepthExceeded(err) {
		log.Printf("[RESOLVE] reaction %s by %s aborted at depth ceiling", ability.ID, reactor.ID)
		ro.Aborted = true
		outcome.Reactions = append(outcome.Reactions, ro)
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.stream.Publish(reactionEvent); err != nil {
		return err
	}

	// Reactions resolve against the actor that triggered them
	targetID := trigger.Event.ActorID
	if ability.Targeting == content.TargetSelf {
		targetID = reactor.ID
	}

	for i := range ability.Effects {
		eo, err := s.resolveSyncEffect(reactor, ability, &ability.Effects[i], targetID, item, outcome)
		if err != nil {
			if engerr.IsDepthExceeded(err) {
				ro.Aborted = true
				break
			}
			s.unwindTo(item)
			return err
		}
		if eo != nil {
			ro.Effects = append(ro.Effects, *eo)
		}
	}

	if offer.CancelsTrigger && trigger.Event.Cancellable {
		if err := trigger.Cancel(); err != nil {
			return err
		}
		ro.CancelledTrigger = true
	}

	if _, err := s.stack.Pop(); err != nil {
		return err
	}
	outcome.Reactions = append(outcome.Reactions, ro)
	return nil
}

// resolveSyncEffect computes and applies one reaction effect in place.
// Nested reaction windows open here too, but answer synchronously; a player
// decision deep in a chain declines rather than suspending.
func (s *Service) resolveSyncEffect(source *combat.Combatant, ability *content.AbilityDefinition, effect *content.EffectDefinition, targetID string, parent *Item, outcome *ActionOutcome) (*EffectOutcome, error) {
	staged, blocked, err := s.computeEffect(source, ability, effect, targetID, parent)
	if err != nil {
		return nil, err
	}
	if blocked != nil {
		return blocked, nil
	}

	if staged.item != nil {
		if s.reactions != nil {
			for _, offer := range s.reactions.Offers(staged.item.Event) {
				take, err := s.decideSync(offer, staged.item.Event)
				if err != nil {
					s.unwindTo(parent)
					return nil, err
				}
				if take {
					if err := s.executeReaction(outcome, offer, staged.item); err != nil {
						s.unwindTo(parent)
						return nil, err
					}
				}
				if staged.item.Cancelled() {
					break
				}
			}
		}
		if _, err := s.stack.Pop(); err != nil {
			return nil, err
		}
		if staged.item.Cancelled() {
			return &EffectOutcome{
				Type:       effect.Type,
				TargetID:   targetID,
				Skipped:    true,
				SkipReason: "cancelled by reaction",
			}, nil
		}
	}

	var anchor string
	return s.applyEffect(source, staged, &anchor)
}

// decideSync answers a nested reaction offer without suspending
func (s *Service) decideSync(offer ReactionOffer, event *events.RuleEvent) (bool, error) {
	if s.decisions == nil {
		return false, nil
	}
	take, err := s.decisions.Decide(offer, event)
	if engerr.IsAwaitingInput(err) {
		log.Printf("[RESOLVE] nested reaction by %s cannot await input; declining", offer.ReactorID)
		return false, nil
	}
	return take, err
}

// unwindTo pops until the given item is on top again
func (s *Service) unwindTo(item *Item) {
	for s.stack.Size() > 0 {
		if top := s.stack.Peek(); top == nil || top.ID == item.ID {
			return
		}
		if _, err := s.stack.Pop(); err != nil {
			return
		}
	}
}

func (s *Service) publishPost(eventType events.Type, actorID, targetID string, outcome events.Outcome) error {
	return s.stream.Publish(&events.RuleEvent{
		ID:       s.uuidGen.New(),
		Type:     eventType,
		ActorID:  actorID,
		TargetID: targetID,
		Outcome:  outcome,
	})
}
