// Package config provides YAML-based configuration loading and difficulty
// presets for t2048.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/game"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config contains all t2048 settings.
type Config struct {
	Board       BoardConfig       `yaml:"board"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Storage     StorageConfig     `yaml:"storage"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
}

// BoardConfig defines the board shape.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// SpawnConfig defines how tiles appear.
type SpawnConfig struct {
	InitialMin      int     `yaml:"initial_min"`
	InitialMax      int     `yaml:"initial_max"`
	FourProbability float64 `yaml:"four_probability"`       // Chance a new tile is a 4
	ExtraTileProb   float64 `yaml:"extra_tile_probability"` // Chance a move spawns two tiles
}

// LeaderboardConfig defines how many scores are kept.
type LeaderboardConfig struct {
	Size int `yaml:"size"`
}

// StorageConfig defines where scores and saved games live.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address        string        `yaml:"address"`
	HostKeyPath    string        `yaml:"host_key_path"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MetricsAddress string        `yaml:"metrics_address"` // Empty disables metrics
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	size := c.Board.Size
	if size < engine.MinSize || size > engine.MaxSize {
		return fmt.Errorf("%w: board.size %d outside [%d, %d]", ErrInvalid, size, engine.MinSize, engine.MaxSize)
	}
	if c.Spawn.InitialMin < 1 {
		return fmt.Errorf("%w: spawn.initial_min must be at least 1", ErrInvalid)
	}
	if c.Spawn.InitialMax < c.Spawn.InitialMin {
		return fmt.Errorf("%w: spawn.initial_max %d below initial_min %d", ErrInvalid, c.Spawn.InitialMax, c.Spawn.InitialMin)
	}
	if c.Spawn.InitialMax > size*size {
		return fmt.Errorf("%w: spawn.initial_max %d exceeds %d cells", ErrInvalid, c.Spawn.InitialMax, size*size)
	}
	if !isProbability(c.Spawn.FourProbability) {
		return fmt.Errorf("%w: spawn.four_probability %v outside [0, 1]", ErrInvalid, c.Spawn.FourProbability)
	}
	if !isProbability(c.Spawn.ExtraTileProb) {
		return fmt.Errorf("%w: spawn.extra_tile_probability %v outside [0, 1]", ErrInvalid, c.Spawn.ExtraTileProb)
	}
	if c.Leaderboard.Size < 1 {
		return fmt.Errorf("%w: leaderboard.size must be at least 1", ErrInvalid)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("%w: server.idle_timeout is negative", ErrInvalid)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Rules converts the spawn and board settings into session rules.
func (c Config) Rules() game.Rules {
	return game.Rules{
		Size:           c.Board.Size,
		InitialMin:     c.Spawn.InitialMin,
		InitialMax:     c.Spawn.InitialMax,
		FourProb:       c.Spawn.FourProbability,
		ExtraSpawnProb: c.Spawn.ExtraTileProb,
	}
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
