package snapshots

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	engerr "github.com/Interzoneism/qdnd-sub006/internal/errors"
	"github.com/Interzoneism/qdnd-sub006/internal/simulation"
)

const (
	// Key patterns
	latestKeyFormat = "encounter:%s:latest"
	roundKeyFormat  = "encounter:%s:round:%d"
	roundsIndexKey  = "encounter:%s:rounds"

	// TTL for snapshots (24 hours)
	defaultSnapshotTTL = 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client      redis.UniversalClient
	SnapshotTTL time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client      redis.UniversalClient
	snapshotTTL time.Duration
}

// NewRedisRepository creates a new Redis-backed snapshot repository
func NewRedisRepository(cfg *RedisRepoConfig) (Repository, error) {
	if cfg.Client == nil {
		return nil, engerr.Construction("redis client is required")
	}

	ttl := cfg.SnapshotTTL
	if ttl == 0 {
		ttl = defaultSnapshotTTL
	}

	return &redisRepository{
		client:      cfg.Client,
		snapshotTTL: ttl,
	}, nil
}

// Save implements Repository.Save
func (r *redisRepository) Save(ctx context.Context, encounterID string, snap *simulation.EncounterSnapshot) error {
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

	// Pipeline keeps the latest pointer and the round checkpoint in step
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(latestKeyFormat, encounterID), data, r.snapshotTTL)
	pipe.Set(ctx, fmt.Sprintf(roundKeyFormat, encounterID, snap.Round), data, r.snapshotTTL)
	pipe.SAdd(ctx, fmt.Sprintf(roundsIndexKey, encounterID), snap.Round)
	pipe.Expire(ctx, fmt.Sprintf(roundsIndexKey, encounterID), r.snapshotTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return engerr.Wrapf(err, "failed to save snapshot for encounter %s", encounterID)
	}
	return nil
}

// Load implements Repository.Load
func (r *redisRepository) Load(ctx context.Context, encounterID string) (*simulation.EncounterSnapshot, error) {
	return r.load(ctx, fmt.Sprintf(latestKeyFormat, encounterID), encounterID)
}

// LoadRound implements Repository.LoadRound
func (r *redisRepository) LoadRound(ctx context.Context, encounterID string, round int) (*simulation.EncounterSnapshot, error) {
	return r.load(ctx, fmt.Sprintf(roundKeyFormat, encounterID, round), encounterID)
}

func (r *redisRepository) load(ctx context.Context, key, encounterID string) (*simulation.EncounterSnapshot, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, engerr.NotFoundf("no snapshot for encounter %s", encounterID)
		}
		return nil, engerr.Wrapf(err, "failed to load snapshot for encounter %s", encounterID)
	}

	var snap simulation.EncounterSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, engerr.Wrap(err, "failed to deserialize snapshot")
	}
	return &snap, nil
}

// Delete implements Repository.Delete
func (r *redisRepository) Delete(ctx context.Context, encounterID string) error {
	indexKey := fmt.Sprintf(roundsIndexKey, encounterID)

	rounds, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return engerr.Wrapf(err, "failed to list checkpoints for encounter %s", encounterID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, fmt.Sprintf(latestKeyFormat, encounterID))
	for _, round := range rounds {
		pipe.Del(ctx, fmt.Sprintf("encounter:%s:round:%s", encounterID, round))
	}
	pipe.Del(ctx, indexKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return engerr.Wrapf(err, "failed to delete snapshots for encounter %s", encounterID)
	}
	return nil
}
