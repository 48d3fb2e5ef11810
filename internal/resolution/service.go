package resolution

import (
	"log"

	"github.com/Interzoneism/qdnd-sub006/internal/content"
	"github.com/Interzoneism/qdnd-sub006/internal/dice"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/combat"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/events"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
	"github.com/Interzoneism/qdnd-sub006/internal/rules"
	"github.com/Interzoneism/qdnd-sub006/internal/uuid"
)

// ServiceConfig wires the pipeline's collaborators. Registry, Roller, and
// World are required; everything else has a usable default.
type ServiceConfig struct {
	Registry    content.Registry
	Roller      dice.Roller
	World       World
	Stream      *events.Stream
	Battlefield Battlefield
	Checker     RequirementChecker
	Reactions   ReactionPolicy
	Decisions   DecisionProvider

	UUIDGenerator uuid.Generator
	MaxDepth      int
}

// Service is the effect pipeline: it resolves declared actions into typed
// effect applications through the resolution stack, opening reaction windows
// on every cancellable pre event.
type Service struct {
	registry    content.Registry
	roller      dice.Roller
	world       World
	stream      *events.Stream
	battlefield Battlefield
	checker     RequirementChecker
	reactions   ReactionPolicy
	decisions   DecisionProvider
	uuidGen     uuid.Generator
	stack       *Stack

	pending map[string]*pendingResolution
}

// NewService creates the pipeline service
func NewService(cfg *ServiceConfig) (*Service, error) {
	if cfg.Registry == nil {
		return nil, engerr.Construction("resolution service requires a content registry")
	}
	if cfg.Roller == nil {
		return nil, engerr.Construction("resolution service requires a dice roller")
	}
	if cfg.World == nil {
		return nil, engerr.Construction("resolution service requires a world")
	}

	stream := cfg.Stream
	if stream == nil {
		stream = events.NewStream()
	}
	uuidGen := cfg.UUIDGenerator
	if uuidGen == nil {
		uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	checker := cfg.Checker
	if checker == nil {
		checker = NewStandardChecker(cfg.World, nil)
	}

	return &Service{
		registry:    cfg.Registry,
		roller:      cfg.Roller,
		world:       cfg.World,
		stream:      stream,
		battlefield: cfg.Battlefield,
		checker:     checker,
		reactions:   cfg.Reactions,
		decisions:   cfg.Decisions,
		uuidGen:     uuidGen,
		stack:       NewStack(cfg.MaxDepth, uuidGen),
		pending:     make(map[string]*pendingResolution),
	}, nil
}

// Stream returns the event stream resolution publishes to
func (s *Service) Stream() *events.Stream {
	return s.stream
}

type resolveStage int

const (
	stageRootWindow resolveStage = iota
	stageEffects
)

// stagedEffect is a computed effect waiting on its reaction window. The
// amount lives on the item's event outcome so reactions can adjust it.
type stagedEffect struct {
	item     *Item
	effect   *content.EffectDefinition
	targetID string
	attack   *rules.AttackResult
	save     *rules.SaveResult
}

// pendingResolution is the resumable state of one action. It survives in
// memory between ExecuteAction and ResumeAction; nothing here is serialized.
type pendingResolution struct {
	token   string
	actor   *combat.Combatant
	ability *content.AbilityDefinition
	outcome *ActionOutcome
	root    *Item
	targets []string

	stage     resolveStage
	effectIdx int
	targetIdx int
	staged    *stagedEffect

	offers   []ReactionOffer
	offerIdx int

	// anchorID links statuses applied later in this action to the
	// concentration anchor it created
	anchorID string

	resumeAnswer *bool
}

// ExecuteAction resolves one declared action. The cost is spent up front and
// never refunded, even if a reaction cancels the action. When a player
// reaction decision is needed the result carries a pending token instead of
// an outcome; ResumeAction continues from there.
func (s *Service) ExecuteAction(req *ActionRequest) (*ActionResult, error) {
	actor, err := s.world.Combatant(req.ActorID)
	if err != nil {
		return nil, err
	}
	ability, err := s.registry.Ability(req.AbilityID)
	if err != nil {
		return nil, err
	}
	if err := s.checker.CheckAction(actor, ability, req.TargetIDs); err != nil {
		return nil, err
	}
	// Targets resolve before any cost is spent; a content error here must
	// leave the actor untouched
	targets, err := s.resolveTargets(actor, ability, req.TargetIDs)
	if err != nil {
		return nil, err
	}

	// Costs are spent at declaration; cancellation never refunds them
	if err := actor.Budget.Consume(ability.Cost, ability.ActionType); err != nil {
		return nil, err
	}
	if err := actor.Resources.Pay(ability.Cost); err != nil {
		return nil, err
	}

	rootEvent := &events.RuleEvent{
		ID:          s.uuidGen.New(),
		Type:        events.TypeActionDeclared,
		ActorID:     actor.ID,
		AbilityID:   ability.ID,
		Cancellable: true,
	}
	root, err := s.stack.Push(nil, rootEvent)
	if err != nil {
		return nil, err
	}
	if err := s.stream.Publish(rootEvent); err != nil {
		s.unwind(root)
		return nil, err
	}

	log.Printf("[RESOLVE] %s declares %s", actor.ID, ability.ID)

	pr := &pendingResolution{
		token:   s.uuidGen.New(),
		actor:   actor,
		ability: ability,
		root:    root,
		targets: targets,
		outcome: &ActionOutcome{
			ActionID:  root.ID,
			ActorID:   actor.ID,
			AbilityID: ability.ID,
		},
	}
	s.openWindow(pr, rootEvent)
	return s.runTracked(pr)
}

// ResumeAction continues a suspended action with the player's reaction
// decision. The token identifies exactly one suspended resolution.
func (s *Service) ResumeAction(token string, react bool) (*ActionResult, error) {
	pr, exists := s.pending[token]
	if !exists {
		return nil, engerr.NotFoundf("no suspended action for token %q", token)
	}
	delete(s.pending, token)
	pr.resumeAnswer = &react
	return s.runTracked(pr)
}

// PendingCount returns the number of suspended actions
func (s *Service) PendingCount() int {
	return len(s.pending)
}

func (s *Service) runTracked(pr *pendingResolution) (*ActionResult, error) {
	result, err := s.run(pr)
	if err != nil {
		s.unwind(pr.root)
		return nil, err
	}
	return result, nil
}

// run drives the resolution state machine until it finishes or suspends
func (s *Service) run(pr *pendingResolution) (*ActionResult, error) {
	for {
		switch pr.stage {
		case stageRootWindow:
			pending, err := s.driveWindow(pr, pr.root)
			if err != nil {
				return nil, err
			}
			if pending != nil {
				return &ActionResult{Pending: pending}, nil
			}
			if pr.root.Cancelled() {
				pr.outcome.Cancelled = true
				log.Printf("[RESOLVE] action %s cancelled; costs stay spent", pr.ability.ID)
				return s.finish(pr)
			}
			pr.stage = stageEffects

		case stageEffects:
			if pr.effectIdx >= len(pr.ability.Effects) {
				return s.finish(pr)
			}
			if pr.targetIdx >= len(pr.targets) {
				pr.effectIdx++
				pr.targetIdx = 0
				continue
			}
			effect := &pr.ability.Effects[pr.effectIdx]
			targetID := pr.targets[pr.targetIdx]

			if pr.staged == nil {
				staged, blocked, err := s.computeEffect(pr.actor, pr.ability, effect, targetID, pr.root)
				if err != nil {
					return nil, err
				}
				if blocked != nil {
					pr.outcome.Effects = append(pr.outcome.Effects, *blocked)
					pr.targetIdx++
					continue
				}
				pr.staged = staged
				if staged.item != nil {
					s.openWindow(pr, staged.item.Event)
				}
			}

			if pr.staged.item != nil {
				pending, err := s.driveWindow(pr, pr.staged.item)
				if err != nil {
					return nil, err
				}
				if pending != nil {
					return &ActionResult{Pending: pending}, nil
				}
				if _, err := s.stack.Pop(); err != nil {
					return nil, err
				}
			}

			if pr.staged.item != nil && pr.staged.item.Cancelled() {
				pr.outcome.Effects = append(pr.outcome.Effects, EffectOutcome{
					Type:       effect.Type,
					TargetID:   targetID,
					Skipped:    true,
					SkipReason: "cancelled by reaction",
				})
			} else {
				eo, err := s.applyEffect(pr.actor, pr.staged, &pr.anchorID)
				if err != nil {
					return nil, err
				}
				pr.outcome.Effects = append(pr.outcome.Effects, *eo)
			}
			pr.staged = nil
			pr.targetIdx++
		}
	}
}

// openWindow gathers reaction offers for an event
func (s *Service) openWindow(pr *pendingResolution, event *events.RuleEvent) {
	pr.offers = nil
	pr.offerIdx = 0
	if s.reactions != nil {
		pr.offers = s.reactions.Offers(event)
	}
}

// driveWindow walks the open reaction window. It returns a pending decision
// when a player reactor needs to answer out of band.
func (s *Service) driveWindow(pr *pendingResolution, item *Item) (*PendingDecision, error) {
	for pr.offerIdx < len(pr.offers) {
		offer := pr.offers[pr.offerIdx]

		var take bool
		switch {
		case pr.resumeAnswer != nil:
			take = *pr.resumeAnswer
			pr.resumeAnswer = nil
		case s.decisions == nil:
			take = false
		default:
			var err error
			take, err = s.decisions.Decide(offer, item.Event)
			if engerr.IsAwaitingInput(err) {
				s.pending[pr.token] = pr
				return &PendingDecision{Token: pr.token, Offer: offer, Event: item.Event}, nil
			}
			if err != nil {
				return nil, err
			}
		}

		pr.offerIdx++
		if take {
			if err := s.executeReaction(pr.outcome, offer, item); err != nil {
				return nil, err
			}
		}
		if item.Cancelled() {
			break // no further offers against a dead trigger
		}
	}
	pr.offers = nil
	pr.offerIdx = 0
	return nil, nil
}

// finish pops the root, publishes completion, and returns the outcome
func (s *Service) finish(pr *pendingResolution) (*ActionResult, error) {
	popped, err := s.stack.Pop()
	if err != nil {
		return nil, err
	}
	if popped.ID != pr.root.ID {
		return nil, engerr.Internalf("resolution stack corrupted: expected root %s, popped %s", pr.root.ID, popped.ID)
	}

	if err := s.stream.Publish(&events.RuleEvent{
		ID:        s.uuidGen.New(),
		Type:      events.TypeActionCompleted,
		ActorID:   pr.actor.ID,
		AbilityID: pr.ability.ID,
	}); err != nil {
		return nil, err
	}

	return &ActionResult{Outcome: pr.outcome}, nil
}

// unwind clears everything this action pushed after a hard failure
func (s *Service) unwind(root *Item) {
	for s.stack.Size() > 0 {
		popped, err := s.stack.Pop()
		if err != nil || popped.ID == root.ID {
			return
		}
	}
}

// resolveTargets expands the targeting shape into concrete target ids in
// deterministic world order. An unrecognized shape is a content error, never
// a fallthrough to the requested ids.
func (s *Service) resolveTargets(actor *combat.Combatant, ability *content.AbilityDefinition, requested []string) ([]string, error) {
	switch ability.EffectiveTargeting() {
	case content.TargetSingle:
		return requested, nil
	case content.TargetSelf:
		return []string{actor.ID}, nil
	case content.TargetAllEnemies:
		var ids []string
		for _, c := range s.world.Combatants() {
			if c.Faction != actor.Faction && !c.IsDefeated() {
				ids = append(ids, c.ID)
			}
		}
		return ids, nil
	case content.TargetAllAllies:
		var ids []string
		for _, c := range s.world.Combatants() {
			if c.Faction == actor.Faction && !c.IsDefeated() {
				ids = append(ids, c.ID)
			}
		}
		return ids, nil
	default:
		return nil, engerr.Contentf("ability %q has unknown targeting shape %q", ability.ID, ability.Targeting)
	}
}
