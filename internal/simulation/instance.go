// Package simulation hosts complete combat instances: initiative order,
// turn boundaries, and deterministic replay under an explicit seed.
package simulation

import (
	"encoding/json"
	"hash/fnv"
	"log"

	"github.com/Interzoneism/qdnd-sub006/internal/content"
	"github.com/Interzoneism/qdnd-sub006/internal/dice"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/combat"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/events"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
	"github.com/Interzoneism/qdnd-sub006/internal/resolution"
	"github.com/Interzoneism/qdnd-sub006/internal/uuid"
)

// InstanceConfig builds one combat instance. Seed is mandatory: two
// instances built from the same config and seed replay bit-for-bit.
type InstanceConfig struct {
	// Seed drives the instance-private RNG. Nil is a construction error;
	// the engine never picks a seed silently.
	Seed *int64

	// Combatants in initiative order
	Combatants []*combat.Combatant

	Registry  content.Registry
	Reactions resolution.ReactionPolicy
	Decisions resolution.DecisionProvider
	Checker   resolution.RequirementChecker
	MaxDepth  int
}

// Instance is one running encounter. All methods are driven by a single
// caller at a time; there is no internal locking.
type Instance struct {
	combatants []*combat.Combatant
	byID       map[string]*combat.Combatant

	svc         *resolution.Service
	battlefield *GridBattlefield

	round   int
	turnIdx int
}

// NewInstance creates an encounter from resolved combatants and content
func NewInstance(cfg *InstanceConfig) (*Instance, error) {
	if cfg.Seed == nil {
		return nil, engerr.Construction("combat instance requires an explicit seed")
	}
	if cfg.Registry == nil {
		return nil, engerr.Construction("combat instance requires a content registry")
	}
	if len(cfg.Combatants) == 0 {
		return nil, engerr.Construction("combat instance requires combatants")
	}

	inst := &Instance{
		combatants: cfg.Combatants,
		byID:       make(map[string]*combat.Combatant, len(cfg.Combatants)),
		round:      1,
	}
	for _, c := range cfg.Combatants {
		if _, exists := inst.byID[c.ID]; exists {
			return nil, engerr.Constructionf("duplicate combatant id %q", c.ID)
		}
		inst.byID[c.ID] = c
	}

	inst.battlefield = NewGridBattlefield(inst)

	svc, err := resolution.NewService(&resolution.ServiceConfig{
		Registry:    cfg.Registry,
		Roller:      dice.NewSeededRoller(*cfg.Seed),
		World:       inst,
		Battlefield: inst.battlefield,
		Checker:     cfg.Checker,
		Reactions:   cfg.Reactions,
		Decisions:   cfg.Decisions,
		MaxDepth:    cfg.MaxDepth,

		// Sequential ids keep replays of the same seed hash-identical
		UUIDGenerator: uuid.NewSequentialGenerator("enc"),
	})
	if err != nil {
		return nil, err
	}
	inst.svc = svc

	log.Printf("[SIM] instance created with %d combatants (seed %d)", len(cfg.Combatants), *cfg.Seed)
	return inst, nil
}

// Combatant implements resolution.World
func (i *Instance) Combatant(id string) (*combat.Combatant, error) {
	c, exists := i.byID[id]
	if !exists {
		return nil, engerr.NotFoundf("combatant %q", id)
	}
	return c, nil
}

// Combatants implements resolution.World: initiative order, stable for the
// life of the encounter
func (i *Instance) Combatants() []*combat.Combatant {
	return i.combatants
}

// Current returns the combatant whose turn it is
func (i *Instance) Current() *combat.Combatant {
	return i.combatants[i.turnIdx]
}

// Round returns the current round, starting at 1
func (i *Instance) Round() int {
	return i.round
}

// Stream exposes the instance event stream for subscribers
func (i *Instance) Stream() *events.Stream {
	return i.svc.Stream()
}

// BeginTurn opens the current combatant's turn: the budget resets (including
// the reaction, which returns only here) and turn-start statuses tick.
func (i *Instance) BeginTurn() error {
	current := i.Current()
	current.Budget.ResetForOwnTurnStart()
	return current.Statuses.Tick(content.TickTurnStart, i.svc.Hooks())
}

// EndTurn ticks turn-end statuses and advances initiative, bumping the round
// when it wraps
func (i *Instance) EndTurn() error {
	current := i.Current()
	if err := current.Statuses.Tick(content.TickTurnEnd, i.svc.Hooks()); err != nil {
		return err
	}

	i.turnIdx++
	if i.turnIdx >= len(i.combatants) {
		i.turnIdx = 0
		i.round++
	}
	return nil
}

// Act resolves one action for the current combatant
func (i *Instance) Act(abilityID string, targetIDs ...string) (*resolution.ActionResult, error) {
	return i.svc.ExecuteAction(&resolution.ActionRequest{
		ActorID:   i.Current().ID,
		AbilityID: abilityID,
		TargetIDs: targetIDs,
	})
}

// Resume answers a suspended reaction decision
func (i *Instance) Resume(token string, react bool) (*resolution.ActionResult, error) {
	return i.svc.ResumeAction(token, react)
}

// Over reports whether at most one faction still stands
func (i *Instance) Over() bool {
	factions := make(map[string]bool)
	for _, c := range i.combatants {
		if !c.IsDefeated() {
			factions[c.Faction] = true
		}
	}
	return len(factions) <= 1
}

// EncounterSnapshot is the plain serializable state of an instance
type EncounterSnapshot struct {
	Round      int                        `json:"round"`
	TurnIndex  int                        `json:"turn_index"`
	Combatants []combat.CombatantSnapshot `json:"combatants"`
	Surfaces   []SurfaceSnapshot          `json:"surfaces,omitempty"`
}

// Snapshot captures the instance state in initiative order
func (i *Instance) Snapshot() *EncounterSnapshot {
	snap := &EncounterSnapshot{
		Round:     i.round,
		TurnIndex: i.turnIdx,
		Surfaces:  i.battlefield.Snapshot(),
	}
	for _, c := range i.combatants {
		snap.Combatants = append(snap.Combatants, c.Snapshot())
	}
	return snap
}

// StateHash folds the canonical snapshot into a 64-bit fingerprint. Two
// replays of the same seed and script produce identical hashes.
func (i *Instance) StateHash() (uint64, error) {
	data, err := json.Marshal(i.Snapshot())
	if err != nil {
		return 0, engerr.Wrap(err, "marshal snapshot for hashing")
	}
	h := fnv.New64a()
	if _, err := h.Write(data); err != nil {
		return 0, engerr.Wrap(err, "hash snapshot")
	}
	return h.Sum64(), nil
}
