// Package simconfig loads the engine's environment/configuration layer.
// It follows the same shape as a plain env-with-defaults Load
// function, and layers an optional YAML overlay file on top using
// gopkg.in/yaml.v3.
package simconfig

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the core's full set of tunables.
type Config struct {
	LogLevel string `yaml:"log_level"`

	CellSize            float64 `yaml:"cell_size"`
	ActivationRadius    float64 `yaml:"activation_radius"`
	GPUMemoryBudgetBytes int64  `yaml:"gpu_memory_budget_bytes"`

	PlanCacheCapacity     int     `yaml:"plan_cache_capacity"`
	SimilarityThreshold   float64 `yaml:"similarity_threshold"`
	MaxPlannerIterations  int     `yaml:"max_planner_iterations"`

	TickRateHz float64 `yaml:"tick_rate_hz"`

	DatabaseDSN string `yaml:"database_dsn"`

	EventFeedAddr   string `yaml:"event_feed_addr"`
	EventFeedSecret string `yaml:"event_feed_secret"`
}

// Default returns the built-in baseline before env/YAML overlays.
func Default() *Config {
	return &Config{
		LogLevel:             "info",
		CellSize:             100.0,
		ActivationRadius:     300.0,
		GPUMemoryBudgetBytes: 512 * 1024 * 1024,
		PlanCacheCapacity:    256,
		SimilarityThreshold:  0.85,
		MaxPlannerIterations: 10_000,
		TickRateHz:           60.0,
		EventFeedAddr:        ":8090",
	}
}

// Load builds a Config by starting from Default, applying a YAML file
// at yamlPath if it exists (a missing file is not an error — the
// overlay is optional), then applying environment variable overrides,
// which take precedence over both.
func Load(yamlPath string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		if data, err := os.ReadFile(yamlPath); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("SIMCORE_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := envFloat("SIMCORE_CELL_SIZE"); ok {
		cfg.CellSize = v
	}
	if v, ok := envFloat("SIMCORE_ACTIVATION_RADIUS"); ok {
		cfg.ActivationRadius = v
	}
	if v, ok := envInt64("SIMCORE_GPU_MEMORY_BUDGET_BYTES"); ok {
		cfg.GPUMemoryBudgetBytes = v
	}
	if v, ok := envInt("SIMCORE_PLAN_CACHE_CAPACITY"); ok {
		cfg.PlanCacheCapacity = v
	}
	if v, ok := envFloat("SIMCORE_SIMILARITY_THRESHOLD"); ok {
		cfg.SimilarityThreshold = v
	}
	if v, ok := envInt("SIMCORE_MAX_PLANNER_ITERATIONS"); ok {
		cfg.MaxPlannerIterations = v
	}
	if v, ok := envFloat("SIMCORE_TICK_RATE_HZ"); ok {
		cfg.TickRateHz = v
	}
	if v, ok := os.LookupEnv("SIMCORE_DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SIMCORE_EVENT_FEED_ADDR"); ok {
		cfg.EventFeedAddr = v
	}
	if v, ok := os.LookupEnv("SIMCORE_EVENT_FEED_SECRET"); ok {
		cfg.EventFeedSecret = v
	}
}

func envFloat(key string) (float64, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}

func envInt(key string) (int, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

func envInt64(key string) (int64, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	return v, err == nil
}
