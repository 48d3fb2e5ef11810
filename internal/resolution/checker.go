package resolution

import (
	"github.com/Interzoneism/qdnd-sub006/internal/content"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/combat"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// TargetValidator is the geometry half of requirement checking: range, line
// of effect, and cover live with the battlefield collaborator, not here.
type TargetValidator interface {
	ValidateTarget(actorID, targetID string, shape content.TargetingShape) error
}

// standardChecker enforces the action economy and targeting legality before
// any dice are rolled or costs spent.
type standardChecker struct {
	world     World
	validator TargetValidator
}

// NewStandardChecker creates the default requirement checker. A nil
// validator skips geometry checks.
func NewStandardChecker(world World, validator TargetValidator) RequirementChecker {
	return &standardChecker{world: world, validator: validator}
}

// CheckAction implements RequirementChecker
func (c *standardChecker) CheckAction(actor *combat.Combatant, ability *content.AbilityDefinition, targetIDs []string) error {
	if actor.IsDefeated() {
		return engerr.IllegalTargetf("%s is defeated and cannot act", actor.ID)
	}
	if !actor.Budget.CanAfford(ability.Cost, ability.ActionType) {
		return engerr.InsufficientResourcesf("%s cannot afford %s", actor.ID, ability.ID)
	}
	if !actor.Resources.CanPay(ability.Cost) {
		return engerr.InsufficientResourcesf("%s lacks resources for %s", actor.ID, ability.ID)
	}

	if ability.EffectiveTargeting() == content.TargetSingle {
		if len(targetIDs) == 0 {
			return engerr.IllegalTargetf("%s requires a target", ability.ID)
		}
		for _, targetID := range targetIDs {
			target, err := c.world.Combatant(targetID)
			if err != nil {
				return err
			}
			if target.IsDefeated() {
				return engerr.IllegalTargetf("%s is already defeated", targetID)
			}
			if c.validator != nil {
				if err := c.validator.ValidateTarget(actor.ID, targetID, ability.EffectiveTargeting()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// permissiveChecker approves everything. Scripted scenario replays inject it
// in place of the standard checker.
type permissiveChecker struct{}

// NewPermissiveChecker creates a checker that approves every request
func NewPermissiveChecker() RequirementChecker {
	return permissiveChecker{}
}

// CheckAction implements RequirementChecker
func (permissiveChecker) CheckAction(*combat.Combatant, *content.AbilityDefinition, []string) error {
	return nil
}
