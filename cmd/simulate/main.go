package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Interzoneism/qdnd-sub006/internal/config"
	"github.com/Interzoneism/qdnd-sub006/internal/content"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/combat"
	"github.com/Interzoneism/qdnd-sub006/internal/domain/shared"
	"github.com/Interzoneism/qdnd-sub006/internal/repositories/snapshots"
	"github.com/Interzoneism/qdnd-sub006/internal/simulation"
	"github.com/Interzoneism/qdnd-sub006/internal/uuid"
)

const maxRounds = 20

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Base seed: %d", cfg.Simulation.Seed)
	log.Printf("Runs: %d, workers: %d", cfg.Simulation.Runs, cfg.Simulation.Workers)

	registry, err := content.NewRegistry(demoContent())
	if err != nil {
		log.Fatalf("Failed to build content registry: %v", err)
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis if URL is provided
	repo := snapshots.NewInMemoryRepository()
	if cfg.Redis.URL != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory snapshots")
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
				cancel()
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory snapshots")
				redisClient = nil
			} else {
				cancel()
				log.Println("Successfully connected to Redis")

				redisRepo, repoErr := snapshots.NewRedisRepository(&snapshots.RedisRepoConfig{
					Client:      redisClient,
					SnapshotTTL: cfg.Redis.SnapshotTTL,
				})
				if repoErr != nil {
					log.Fatalf("Failed to create snapshot repository: %v", repoErr)
				}
				repo = redisRepo
				log.Println("Using Redis for snapshot persistence")
			}
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory snapshots")
	}

	ctx := context.Background()

	hashes, err := simulation.RunBatch(ctx, &simulation.BatchConfig{
		Runs:     cfg.Simulation.Runs,
		BaseSeed: cfg.Simulation.Seed,
		Workers:  cfg.Simulation.Workers,
		Build: func(seed int64) (*simulation.Instance, error) {
			return simulation.NewInstance(&simulation.InstanceConfig{
				Seed:       &seed,
				Registry:   registry,
				Combatants: demoCombatants(),
			})
		},
		Scenario: func(inst *simulation.Instance) error {
			if err := runEncounter(inst); err != nil {
				return err
			}
			hash, err := inst.StateHash()
			if err != nil {
				return err
			}
			encounterID := fmt.Sprintf("demo-%016x", hash)
			return repo.Save(ctx, encounterID, inst.Snapshot())
		},
	})
	if err != nil {
		log.Fatalf("Batch failed: %v", err)
	}

	for run, hash := range hashes {
		fmt.Printf("run %d (seed %d): state hash %016x\n", run, cfg.Simulation.Seed+int64(run), hash)
	}

	// Clean up Redis connection if we have one
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}

// runEncounter drives a scripted duel: each combatant attacks the first
// standing enemy on its turn until one side falls or the round cap hits.
func runEncounter(inst *simulation.Instance) error {
	for !inst.Over() && inst.Round() <= maxRounds {
		if err := inst.BeginTurn(); err != nil {
			return err
		}

		actor := inst.Current()
		if !actor.IsDefeated() {
			if target := firstStandingEnemy(inst, actor.Faction); target != "" {
				if _, err := inst.Act("firebolt", target); err != nil {
					return err
				}
			}
		}

		if err := inst.EndTurn(); err != nil {
			return err
		}
	}
	return nil
}

func firstStandingEnemy(inst *simulation.Instance, faction string) string {
	for _, c := range inst.Combatants() {
		if c.Faction != faction && !c.IsDefeated() {
			return c.ID
		}
	}
	return ""
}

func demoCombatants() []*combat.Combatant {
	hero := combat.NewCombatant(&combat.CombatantConfig{
		ID:               "hero",
		Name:             "Hero",
		Faction:          "heroes",
		MaxHP:            30,
		ArmorClass:       14,
		Speed:            30,
		ProficiencyBonus: 2,
		UUIDGenerator:    uuid.NewSequentialGenerator("hero"),
	})
	goblin := combat.NewCombatant(&combat.CombatantConfig{
		ID:               "goblin",
		Name:             "Goblin",
		Faction:          "monsters",
		MaxHP:            21,
		ArmorClass:       12,
		Speed:            30,
		ProficiencyBonus: 2,
		UUIDGenerator:    uuid.NewSequentialGenerator("goblin"),
	})
	return []*combat.Combatant{hero, goblin}
}

func demoContent() *content.RegistryConfig {
	return &content.RegistryConfig{
		Abilities: []*content.AbilityDefinition{
			{
				ID:         "firebolt",
				Name:       "Firebolt",
				ActionType: shared.ActionAttack,
				Cost:       shared.ActionCost{Action: true},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectDamage, Formula: "1d10", DamageType: "fire", AttackRoll: true},
				},
			},
			{
				ID:         "healing_word",
				Name:       "Healing Word",
				ActionType: shared.ActionCast,
				Cost:       shared.ActionCost{BonusAction: true},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectHeal, Formula: "1d4+2"},
				},
			},
			{
				ID:         "ignite",
				Name:       "Ignite",
				ActionType: shared.ActionCast,
				Cost:       shared.ActionCost{Action: true},
				Targeting:  content.TargetSingle,
				Effects: []content.EffectDefinition{
					{Type: content.EffectApplyStatus, StatusID: "burning"},
				},
			},
		},
		Statuses: []*content.StatusDefinition{
			{
				ID:             "burning",
				Name:           "Burning",
				MaxStacks:      3,
				Stacking:       content.StackingStacks,
				DurationTurns:  2,
				TickTiming:     content.TickTurnStart,
				TickFormula:    "1d4",
				TickDamageType: "fire",
				RemovalGroup:   "fire_dot",
			},
		},
	}
}
