package snapshots

import (
	"context"
	"encoding/json"
	"sync"

	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
	"github.com/Interzoneism/qdnd-sub006/internal/simulation"
)

// inMemoryRepository implements Repository with process-local storage.
// Snapshots are stored as serialized copies so later instance mutation never
// leaks into a stored checkpoint.
type inMemoryRepository struct {
	mu     sync.RWMutex
	latest map[string][]byte
	rounds map[string]map[int][]byte
}

// NewInMemoryRepository creates an in-memory snapshot repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		latest: make(map[string][]byte),
		rounds: make(map[string]map[int][]byte),
	}
}

// Save implements Repository.Save
func (r *inMemoryRepository) Save(ctx context.Context, encounterID string, snap *simulation.EncounterSnapshot) error {
	if encounterID == "" {
		return engerr.InvalidArgument("encounter ID cannot be empty")
	}
	if snap == nil {
		return engerr.InvalidArgument("snapshot cannot be nil")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return engerr.Wrap(err, "failed to serialize snapshot")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.latest[encounterID] = data
	if r.rounds[encounterID] == nil {
		r.rounds[encounterID] = make(map[int][]byte)
	}
	r.rounds[encounterID][snap.Round] = data
	return nil
}

// Load implements Repository.Load
func (r *inMemoryRepository) Load(ctx context.Context, encounterID string) (*simulation.EncounterSnapshot, error) {
	r.mu.RLock()
	data, exists := r.latest[encounterID]
	r.mu.RUnlock()

	if !exists {
		return nil, engerr.NotFoundf("no snapshot for encounter %s", encounterID)
	}
	return decode(data)
}

// LoadRound implements Repository.LoadRound
func (r *inMemoryRepository) LoadRound(ctx context.Context, encounterID string, round int) (*simulation.EncounterSnapshot, error) {
	r.mu.RLock()
	data, exists := r.rounds[encounterID][round]
	r.mu.RUnlock()

	if !exists {
		return nil, engerr.NotFoundf("no round %d snapshot for encounter %s", round, encounterID)
	}
	return decode(data)
}

// Delete implements Repository.Delete
func (r *inMemoryRepository) Delete(ctx context.Context, encounterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.latest, encounterID)
	delete(r.rounds, encounterID)
	return nil
}

func decode(data []byte) (*simulation.EncounterSnapshot, error) {
	var snap simulation.EncounterSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, engerr.Wrap(err, "failed to deserialize snapshot")
	}
	return &snap, nil
}
