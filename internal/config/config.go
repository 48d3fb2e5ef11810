package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the simulator
type Config struct {
	Simulation SimulationConfig
	Redis      RedisConfig
}

// SimulationConfig holds batch simulation settings
type SimulationConfig struct {
	Seed    int64
	Runs    int
	Workers int
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL         string // Optional: full redis:// URL, takes precedence over Addr
	Addr        string
	Password    string
	DB          int
	SnapshotTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Simulation: SimulationConfig{
			Seed:    getEnvAsInt64OrDefault("SIM_SEED", 1),
			Runs:    getEnvAsIntOrDefault("SIM_RUNS", 1),
			Workers: getEnvAsIntOrDefault("SIM_WORKERS", 4),
		},
		Redis: RedisConfig{
			URL:         os.Getenv("REDIS_URL"),
			Addr:        getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password:    os.Getenv("REDIS_PASSWORD"),
			DB:          getEnvAsIntOrDefault("REDIS_DB", 0),
			SnapshotTTL: getEnvAsDurationOrDefault("SNAPSHOT_TTL", 24*time.Hour),
		},
	}

	// Validate required fields
	if cfg.Simulation.Runs < 1 {
		return nil, fmt.Errorf("SIM_RUNS must be at least 1")
	}
	if cfg.Simulation.Workers < 1 {
		return nil, fmt.Errorf("SIM_WORKERS must be at least 1")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
