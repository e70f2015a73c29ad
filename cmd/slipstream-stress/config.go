package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the stress scenario. Every field has a default so the tool runs
// without a file; a TOML file overrides the defaults and flags override the
// file.
type Config struct {
	Seed      int64   `toml:"seed"`
	Ticks     int     `toml:"ticks"`
	Movers    int     `toml:"movers"`
	Spawners  int     `toml:"spawners"`
	WorldSize float64 `toml:"world_size"`
	CellSize  float64 `toml:"cell_size"`

	Spawner SpawnerConfig `toml:"spawner"`
}

// SpawnerConfig tunes the puddle spawners placed in the scenario.
type SpawnerConfig struct {
	Chance       float64 `toml:"chance"`
	Spread       float64 `toml:"spread"`
	PuddleRadius float64 `toml:"puddle_radius"`
	DryAfter     int64   `toml:"dry_after"`
}

func defaultConfig() Config {
	return Config{
		Seed:      1,
		Ticks:     2000,
		Movers:    5000,
		Spawners:  200,
		WorldSize: 1000,
		CellSize:  20,
		Spawner: SpawnerConfig{
			Chance:       0.5,
			Spread:       10,
			PuddleRadius: 6,
			DryAfter:     200,
		},
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Ticks <= 0 || cfg.Movers < 0 || cfg.Spawners < 0 {
		return cfg, fmt.Errorf("config %s: ticks must be positive and populations non-negative", path)
	}
	return cfg, nil
}
