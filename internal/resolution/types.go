package resolution

//go:generate mockgen -destination=mock/mock_resolution.go -package=mockresolution -source=types.go

import (
	"github.com/Interzoneism/qdnd-sub006/internal/content"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/combat"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/events"
	"github.com/Interzoneism/qdnd-sub006/internal/rules"
)

// World gives the pipeline access to the combatants of one encounter.
// Combatants must return a stable order so batch replays stay bit-for-bit
// identical.
type World interface {
	// Combatant returns the participant with the given id
	Combatant(id string) (*combat.Combatant, error)

	// Combatants returns every participant in deterministic order
	Combatants() []*combat.Combatant
}

// Battlefield is the movement and surface collaborator. The rules core owns
// no geometry: it requests displacement and surface placement here and
// consumes the results.
type Battlefield interface {
	// ForcedMove pushes the target away from the actor by up to distance
	// units and returns the final position
	ForcedMove(actorID, targetID string, distance int) (combat.Position, error)

	// Teleport relocates the target by up to distance units
	Teleport(targetID string, distance int) (combat.Position, error)

	// SpawnSurface places a surface of the given radius centered on the
	// target's position
	SpawnSurface(surfaceID, targetID string, radius int) error
}

// RequirementChecker decides whether an actor may attempt an ability right
// now. Bypass for scripted scenarios is a different implementation injected
// here, never an identity check inside the pipeline.
type RequirementChecker interface {
	CheckAction(actor *combat.Combatant, ability *content.AbilityDefinition, targetIDs []string) error
}

// ReactionOffer is one eligible reaction surfaced by the policy when an
// event opens a reaction window.
type ReactionOffer struct {
	ReactorID string
	AbilityID string

	// CancelsTrigger marks a counter-style reaction: taking it cancels the
	// triggering item if the event is cancellable
	CancelsTrigger bool
}

// ReactionPolicy decides which combatants are offered a reaction to a
// pending event. Offers come back in deterministic order.
type ReactionPolicy interface {
	Offers(event *events.RuleEvent) []ReactionOffer
}

// DecisionProvider answers reaction offers. An automated reactor answers
// immediately; a player-controlled reactor may return an awaiting input
// error, which suspends resolution until ResumeAction supplies the answer.
type DecisionProvider interface {
	Decide(offer ReactionOffer, event *events.RuleEvent) (bool, error)
}

// ActionRequest asks the pipeline to resolve one ability use
type ActionRequest struct {
	ActorID   string
	AbilityID string
	TargetIDs []string
}

// PendingDecision is handed back when resolution suspends on a player
// reaction. The token resumes exactly one suspended action.
type PendingDecision struct {
	Token string
	Offer ReactionOffer
	Event *events.RuleEvent
}

// ReactionOutcome records one reaction taken during resolution
type ReactionOutcome struct {
	ReactorID        string          `json:"reactor_id"`
	AbilityID        string          `json:"ability_id"`
	Aborted          bool            `json:"aborted,omitempty"` // depth ceiling
	CancelledTrigger bool            `json:"cancelled_trigger,omitempty"`
	Effects          []EffectOutcome `json:"effects,omitempty"`
}

// EffectOutcome records the application of one effect to one target
type EffectOutcome struct {
	Type     content.EffectType `json:"type"`
	TargetID string             `json:"target_id"`

	Attack *rules.AttackResult `json:"attack,omitempty"`
	Save   *rules.SaveResult   `json:"save,omitempty"`

	Damage     int              `json:"damage,omitempty"`
	DamageType rules.DamageType `json:"damage_type,omitempty"`
	Healing    int              `json:"healing,omitempty"`

	StatusID        string `json:"status_id,omitempty"`
	StatusesRemoved int    `json:"statuses_removed,omitempty"`

	Position *combat.Position `json:"position,omitempty"`
	Restored int              `json:"restored,omitempty"`

	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`
}

// ActionOutcome is the structured record of one resolved action. A cancelled
// action keeps its costs spent and reports every remaining effect as skipped.
type ActionOutcome struct {
	ActionID  string            `json:"action_id"`
	ActorID   string            `json:"actor_id"`
	AbilityID string            `json:"ability_id"`
	Cancelled bool              `json:"cancelled,omitempty"`
	Effects   []EffectOutcome   `json:"effects,omitempty"`
	Reactions []ReactionOutcome `json:"reactions,omitempty"`
}

// ActionResult is the response of ExecuteAction and ResumeAction: either a
// completed outcome or a pending decision, never both.
type ActionResult struct {
	Outcome *ActionOutcome
	Pending *PendingDecision
}

// Completed reports whether resolution finished
func (r *ActionResult) Completed() bool {
	return r.Outcome != nil
}
