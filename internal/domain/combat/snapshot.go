package combat

import (
	"github.com/Interzoneism/qdnd-sub006/internal/domain/status"
)

// CombatantSnapshot is the plain serializable form of one combatant,
// consumed by external persistence collaborators. No behavior hangs off it.
type CombatantSnapshot struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Faction   string            `json:"faction"`
	MaxHP     int               `json:"max_hp"`
	CurrentHP int               `json:"current_hp"`
	Position  Position          `json:"position"`
	Budget    ActionBudget      `json:"budget"`
	Statuses  []status.Snapshot `json:"statuses,omitempty"`
}

// Snapshot captures the combatant's serializable state
func (c *Combatant) Snapshot() CombatantSnapshot {
	snap := CombatantSnapshot{
		ID:        c.ID,
		Name:      c.Name,
		Faction:   c.Faction,
		MaxHP:     c.MaxHP,
		CurrentHP: c.CurrentHP,
		Position:  c.Position,
		Statuses:  c.Statuses.SnapshotAll(),
	}
	if c.Budget != nil {
		snap.Budget = *c.Budget
	}
	return snap
}
