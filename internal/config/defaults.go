package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/t2048/internal/engine"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size: engine.DefaultSize,
		},
		Spawn: SpawnConfig{
			InitialMin:      2,
			InitialMax:      3,
			FourProbability: engine.DefaultFourProb,
			ExtraTileProb:   0.25,
		},
		Leaderboard: LeaderboardConfig{
			Size: 10,
		},
		Storage: StorageConfig{
			Path: "~/.t2048/t2048.db",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
