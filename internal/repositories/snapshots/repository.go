// Package snapshots persists encounter snapshots so external drivers can
// checkpoint, inspect, and diff deterministic replays.
package snapshots

//go:generate mockgen -destination=mock/mock_repository.go -package=mocksnapshots -source=repository.go

import (
	"context"

	"github.com/Interzoneism/qdnd-sub006/internal/simulation"
)

// Repository defines the interface for encounter snapshot storage
type Repository interface {
	// Save stores the snapshot as the encounter's latest state and as its
	// per-round checkpoint
	Save(ctx context.Context, encounterID string, snap *simulation.EncounterSnapshot) error

	// Load retrieves the encounter's latest snapshot
	Load(ctx context.Context, encounterID string) (*simulation.EncounterSnapshot, error)

	// LoadRound retrieves the checkpoint taken at the given round
	LoadRound(ctx context.Context, encounterID string, round int) (*simulation.EncounterSnapshot, error)

	// Delete removes the encounter's snapshots and checkpoints
	Delete(ctx context.Context, encounterID string) error
}
