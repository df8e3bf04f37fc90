package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetSpawn holds the spawn probabilities each preset applies.
var presetSpawn = map[DifficultyPreset]struct {
	four  float64
	extra float64
}{
	DifficultyEasy:   {four: 0.05, extra: 0.0},
	DifficultyNormal: {four: 0.10, extra: 0.25},
	DifficultyHard:   {four: 0.25, extra: 0.50},
}

// ParseDifficulty validates a preset name. Empty means no preset.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	if name == "" {
		return "", nil
	}
	preset := DifficultyPreset(name)
	if _, ok := presetSpawn[preset]; !ok {
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard)", ErrInvalid, name)
	}
	return preset, nil
}

// ApplyPreset overrides the spawn probabilities for a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	p, ok := presetSpawn[preset]
	if !ok {
		return
	}
	cfg.Spawn.FourProbability = p.four
	cfg.Spawn.ExtraTileProb = p.extra
}
