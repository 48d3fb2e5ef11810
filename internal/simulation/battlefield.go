package simulation

import (
	"sort"

	"github.com/Interzoneism/qdnd-sub006/internal/domain/combat"
	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
)

// GridBattlefield is a flat integer grid with no terrain. Forced movement
// pushes directly away from the actor; teleports displace along the X axis.
// Serious geometry (cover, line of effect) belongs to a richer collaborator
// behind the same interface.
type GridBattlefield struct {
	world    worldLookup
	surfaces map[string]surface
}

type worldLookup interface {
	Combatant(id string) (*combat.Combatant, error)
}

type surface struct {
	ID     string
	Center combat.Position
	Radius int
}

// SurfaceSnapshot is the serializable form of one active surface
type SurfaceSnapshot struct {
	ID     string          `json:"id"`
	Center combat.Position `json:"center"`
	Radius int             `json:"radius"`
}

// NewGridBattlefield creates an empty battlefield over the given world
func NewGridBattlefield(world worldLookup) *GridBattlefield {
	return &GridBattlefield{
		world:    world,
		surfaces: make(map[string]surface),
	}
}

// ForcedMove implements resolution.Battlefield: the target is pushed
// directly away from the actor, axis by axis
func (b *GridBattlefield) ForcedMove(actorID, targetID string, distance int) (combat.Position, error) {
	actor, err := b.world.Combatant(actorID)
	if err != nil {
		return combat.Position{}, err
	}
	target, err := b.world.Combatant(targetID)
	if err != nil {
		return combat.Position{}, err
	}
	if distance < 0 {
		return combat.Position{}, engerr.InvalidArgumentf("negative push distance %d", distance)
	}

	pos := target.Position
	dx := sign(target.Position.X - actor.Position.X)
	dy := sign(target.Position.Y - actor.Position.Y)
	if dx == 0 && dy == 0 {
		dx = 1 // co-located; push along X
	}
	pos.X += dx * distance
	pos.Y += dy * distance
	return pos, nil
}

// Teleport implements resolution.Battlefield
func (b *GridBattlefield) Teleport(targetID string, distance int) (combat.Position, error) {
	target, err := b.world.Combatant(targetID)
	if err != nil {
		return combat.Position{}, err
	}
	pos := target.Position
	pos.X += distance
	return pos, nil
}

// SpawnSurface implements resolution.Battlefield. Respawning a surface id
// moves it rather than stacking a duplicate.
func (b *GridBattlefield) SpawnSurface(surfaceID, targetID string, radius int) error {
	target, err := b.world.Combatant(targetID)
	if err != nil {
		return err
	}
	b.surfaces[surfaceID] = surface{
		ID:     surfaceID,
		Center: target.Position,
		Radius: radius,
	}
	return nil
}

// Snapshot returns active surfaces sorted by id for stable hashing
func (b *GridBattlefield) Snapshot() []SurfaceSnapshot {
	if len(b.surfaces) == 0 {
		return nil
	}
	out := make([]SurfaceSnapshot, 0, len(b.surfaces))
	for _, s := range b.surfaces {
		out = append(out, SurfaceSnapshot{ID: s.ID, Center: s.Center, Radius: s.Radius})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
