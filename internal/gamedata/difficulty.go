package gamedata

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Difficulty names a tuning preset.
type Difficulty string

const (
	DifficultyRelaxed  Difficulty = "relaxed"
	DifficultyStandard Difficulty = "standard"
	DifficultyHard     Difficulty = "hard"
)

// ErrUnknownDifficulty is returned for difficulty names with no tuning entry.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Tuning holds the per-difficulty knobs consumed by level generation.
type Tuning struct {
	ID                Difficulty `json:"id"`
	Name              string     `json:"name"`              // Display name
	ShardDelta        int        `json:"shardDelta"`        // Added to every room's shard quota
	SentinelDelay     int        `json:"sentinelDelay"`     // Ticks a sentinel rests after moving
	SpikeCycle        int        `json:"spikeCycle"`        // Ticks per spike cycle
	ExtraTurretChance float64    `json:"extraTurretChance"` // Added to the base 30% turret roll
	PatchChance       float64    `json:"patchChance"`       // Chance a room holds a health patch
}

// DifficultyFile represents the structure of difficulty.json.
type DifficultyFile struct {
	Difficulties []Tuning `json:"difficulties"`
}

var loadTunings = sync.OnceValues(func() (map[Difficulty]Tuning, error) {
	file, err := Load[DifficultyFile]("difficulty.json")
	if err != nil {
		return nil, err
	}
	if len(file.Difficulties) == 0 {
		return nil, errors.New("no difficulties loaded from difficulty.json")
	}
	tunings := make(map[Difficulty]Tuning, len(file.Difficulties))
	for _, t := range file.Difficulties {
		tunings[t.ID] = t
	}
	return tunings, nil
})

// ParseDifficulty validates a difficulty name, case-insensitively.
func ParseDifficulty(name string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(name)))
	if _, err := TuningFor(d); err != nil {
		return "", err
	}
	return d, nil
}

// TuningFor returns the tuning preset for d.
func TuningFor(d Difficulty) (Tuning, error) {
	tunings, err := loadTunings()
	if err != nil {
		return Tuning{}, err
	}
	t, ok := tunings[d]
	if !ok {
		return Tuning{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(d))
	}
	return t, nil
}

// MustTuningFor is TuningFor for known-good presets. It panics on error.
func MustTuningFor(d Difficulty) Tuning {
	t, err := TuningFor(d)
	if err != nil {
		panic(err)
	}
	return t
}
