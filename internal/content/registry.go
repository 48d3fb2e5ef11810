package content

//go:generate mockgen -destination=mock/mock_registry.go -package=mockcontent -source=registry.go

import (
	"github.com/Interzoneism/qdnd-sub006/internal/dice"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// Registry resolves ability and status definitions by stable id. Content is
// validated at load: missing references and malformed dice formulas are
// load-time fatal errors, never runtime concerns.
type Registry interface {
	// Ability returns the ability definition for the given id
	Ability(id string) (*AbilityDefinition, error)

	// Status returns the status definition for the given id
	Status(id string) (*StatusDefinition, error)

	// Formula returns the cached parsed formula for an expression that was
	// registered at validation time
	Formula(expr string) (dice.Formula, error)
}

// RegistryConfig holds the resolved content set for one rule set
type RegistryConfig struct {
	Abilities []*AbilityDefinition
	Statuses  []*StatusDefinition
}

type inMemoryRegistry struct {
	abilities map[string]*AbilityDefinition
	statuses  map[string]*StatusDefinition
	formulas  map[string]dice.Formula
}

// NewRegistry builds and validates an in-memory registry. Every dice formula
// is parsed once here and cached; every status reference is resolved. Any
// failure is a content error and the registry is not created.
func NewRegistry(cfg *RegistryConfig) (Registry, error) {
	r := &inMemoryRegistry{
		abilities: make(map[string]*AbilityDefinition, len(cfg.Abilities)),
		statuses:  make(map[string]*StatusDefinition, len(cfg.Statuses)),
		formulas:  make(map[string]dice.Formula),
	}

	for _, status := range cfg.Statuses {
		if status.ID == "" {
			return nil, engerr.Content("status definition missing id")
		}
		if _, exists := r.statuses[status.ID]; exists {
			return nil, engerr.Contentf("duplicate status id %q", status.ID)
		}
		r.statuses[status.ID] = status
	}

	for _, ability := range cfg.Abilities {
		if ability.ID == "" {
			return nil, engerr.Content("ability definition missing id")
		}
		if _, exists := r.abilities[ability.ID]; exists {
			return nil, engerr.Contentf("duplicate ability id %q", ability.ID)
		}
		r.abilities[ability.ID] = ability
	}

	// Validate after indexing so cross-references resolve regardless of order
	for _, status := range r.statuses {
		if err := r.validateStatus(status); err != nil {
			return nil, err
		}
	}
	for _, ability := range r.abilities {
		switch ability.Targeting {
		case "", TargetSingle, TargetSelf, TargetAllEnemies, TargetAllAllies:
		default:
			return nil, engerr.Contentf("ability %q has unknown targeting shape %q", ability.ID, ability.Targeting)
		}
		for i := range ability.Effects {
			effect := &ability.Effects[i]
			if err := r.validateEffect(ability.ID, effect); err != nil {
				return nil, err
			}
			if effect.SaveAbility != "" && effect.SaveDC == 0 && ability.SaveDC == 0 {
				return nil, engerr.Contentf("save effect in %q has no DC at either level", ability.ID)
			}
		}
	}

	return r, nil
}

func (r *inMemoryRegistry) validateStatus(status *StatusDefinition) error {
	if status.TickFormula != "" {
		if err := r.cacheFormula(status.TickFormula); err != nil {
			return engerr.Wrapf(err, "status %q tick formula", status.ID)
		}
	}
	switch status.Stacking {
	case "", StackingRefresh, StackingStacks:
	default:
		return engerr.Contentf("status %q has unknown stacking policy %q", status.ID, status.Stacking)
	}
	switch status.TickTiming {
	case "", TickNone, TickTurnStart, TickTurnEnd:
	default:
		return engerr.Contentf("status %q has unknown tick timing %q", status.ID, status.TickTiming)
	}
	for i := range status.OnApply {
		if err := r.validateEffect(status.ID, &status.OnApply[i]); err != nil {
			return err
		}
	}
	for i := range status.OnRemove {
		if err := r.validateEffect(status.ID, &status.OnRemove[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *inMemoryRegistry) validateEffect(ownerID string, effect *EffectDefinition) error {
	switch effect.Type {
	case EffectDamage, EffectHeal:
		if effect.Formula == "" {
			return engerr.Contentf("%s effect in %q missing formula", effect.Type, ownerID)
		}
		if err := r.cacheFormula(effect.Formula); err != nil {
			return engerr.Wrapf(err, "%s effect in %q", effect.Type, ownerID)
		}
		if effect.AttackRoll && effect.SaveAbility != "" {
			return engerr.Contentf("effect in %q gates on both attack and save", ownerID)
		}
		switch effect.SaveAbility {
		case "", "STR", "DEX", "CON", "INT", "WIS", "CHA":
		default:
			return engerr.Contentf("effect in %q has unknown save ability %q", ownerID, effect.SaveAbility)
		}
	case EffectApplyStatus:
		if _, exists := r.statuses[effect.StatusID]; !exists {
			return engerr.Contentf("effect in %q references unknown status %q", ownerID, effect.StatusID)
		}
	case EffectRemoveStatus:
		if effect.RemoveGroup == "" {
			return engerr.Contentf("remove_status effect in %q missing remove group", ownerID)
		}
	case EffectForcedMove, EffectTeleport:
		if effect.Distance == 0 {
			return engerr.Contentf("%s effect in %q missing distance", effect.Type, ownerID)
		}
	case EffectSpawnSurface:
		if effect.SurfaceID == "" {
			return engerr.Contentf("spawn_surface effect in %q missing surface id", ownerID)
		}
	case EffectRestoreResource:
		if effect.ResourceKey == "" && effect.Amount == 0 {
			return engerr.Contentf("restore_resource effect in %q missing resource key", ownerID)
		}
	default:
		return engerr.Contentf("unknown effect type %q in %q", effect.Type, ownerID)
	}
	return nil
}

func (r *inMemoryRegistry) cacheFormula(expr string) error {
	if _, cached := r.formulas[expr]; cached {
		return nil
	}
	formula, err := dice.ParseFormula(expr)
	if err != nil {
		return err
	}
	r.formulas[expr] = formula
	return nil
}

// Ability implements Registry.Ability
func (r *inMemoryRegistry) Ability(id string) (*AbilityDefinition, error) {
	ability, exists := r.abilities[id]
	if !exists {
		return nil, engerr.Contentf("unknown ability %q", id)
	}
	return ability, nil
}

// Status implements Registry.Status
func (r *inMemoryRegistry) Status(id string) (*StatusDefinition, error) {
	status, exists := r.statuses[id]
	if !exists {
		return nil, engerr.Contentf("unknown status %q", id)
	}
	return status, nil
}

// Formula implements Registry.Formula
func (r *inMemoryRegistry) Formula(expr string) (dice.Formula, error) {
	formula, cached := r.formulas[expr]
	if !cached {
		return dice.Formula{}, engerr.Contentf("formula %q was not registered at load time", expr)
	}
	return formula, nil
}
