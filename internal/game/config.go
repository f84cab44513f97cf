package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samdwyer/shardcrawler/internal/gamedata"
	"github.com/samdwyer/shardcrawler/internal/storage"
)

// Mode selects how hazards are scheduled.
type Mode string

const (
	// ModeTurn advances hazards once per accepted player turn.
	ModeTurn Mode = "turn"
	// ModeRealtime advances hazards on a fixed clock.
	ModeRealtime Mode = "real"
)

// ErrUnknownMode is returned for mode names other than turn and real.
var ErrUnknownMode = errors.New("unknown mode")

// ParseMode validates a mode name. "realtime" is accepted for ModeRealtime.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "turn":
		return ModeTurn, nil
	case "real", "realtime":
		return ModeRealtime, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Config holds game configuration options.
type Config struct {
	// Seed for level generation. Empty means the driver picks a random seed.
	Seed string
	// CustomSeed is the seed stored in settings. Seeds given for a single
	// launch through flags or env only set Seed and are never persisted.
	CustomSeed  string
	Difficulty  gamedata.Difficulty
	Mode        Mode
	Palette     string  // Palette id from palettes.json
	Audio       bool    // Enables the Sound collaborator
	ScreenShake float64 // 0 disables shake
}

// DefaultConfig returns the settings a fresh install starts with.
func DefaultConfig() Config {
	return Config{
		Difficulty: gamedata.DifficultyStandard,
		Mode:       ModeTurn,
		Palette:    "default",
	}
}

// ConfigFromEnv overlays SHARDCRAWLER_* environment variables on base.
// Unset variables keep the base value.
func ConfigFromEnv(base Config) (Config, error) {
	cfg := base
	if v, ok := os.LookupEnv("SHARDCRAWLER_SEED"); ok {
		cfg.Seed = v
	}
	if v := os.Getenv("SHARDCRAWLER_DIFFICULTY"); v != "" {
		d, err := gamedata.ParseDifficulty(v)
		if err != nil {
			return base, fmt.Errorf("SHARDCRAWLER_DIFFICULTY: %w", err)
		}
		cfg.Difficulty = d
	}
	if v := os.Getenv("SHARDCRAWLER_MODE"); v != "" {
		m, err := ParseMode(v)
		if err != nil {
			return base, fmt.Errorf("SHARDCRAWLER_MODE: %w", err)
		}
		cfg.Mode = m
	}
	if v := os.Getenv("SHARDCRAWLER_PALETTE"); v != "" {
		cfg.Palette = v
	}
	if v := os.Getenv("SHARDCRAWLER_AUDIO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return base, fmt.Errorf("SHARDCRAWLER_AUDIO: %w", err)
		}
		cfg.Audio = b
	}
	if v := os.Getenv("SHARDCRAWLER_SHAKE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return base, fmt.Errorf("SHARDCRAWLER_SHAKE: %w", err)
		}
		cfg.ScreenShake = max(0, f)
	}
	return cfg, nil
}

// ConfigFromSettings converts a stored settings record, keeping base values
// for fields that fail to parse.
func ConfigFromSettings(base Config, s storage.Settings) Config {
	cfg := base
	if m, err := ParseMode(s.Mode); err == nil {
		cfg.Mode = m
	}
	if d, err := gamedata.ParseDifficulty(s.Difficulty); err == nil {
		cfg.Difficulty = d
	}
	if s.ColorMode != "" {
		cfg.Palette = s.ColorMode
	}
	cfg.Audio = s.Audio
	cfg.ScreenShake = max(0, s.ScreenShake)
	cfg.CustomSeed = s.CustomSeed
	if s.CustomSeed != "" {
		cfg.Seed = s.CustomSeed
	}
	return cfg
}

// Settings converts the config into its stored form.
func (c Config) Settings() storage.Settings {
	return storage.Settings{
		Mode:        string(c.Mode),
		Difficulty:  string(c.Difficulty),
		ColorMode:   c.Palette,
		Audio:       c.Audio,
		ScreenShake: c.ScreenShake,
		CustomSeed:  c.CustomSeed,
	}
}
