package game

import (
	"errors"
	"testing"

	"github.com/samdwyer/shardcrawler/internal/gamedata"
	"github.com/samdwyer/shardcrawler/internal/storage"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"turn", ModeTurn, false},
		{"TURN", ModeTurn, false},
		{"real", ModeRealtime, false},
		{" realtime ", ModeRealtime, false},
		{"", "", true},
		{"paused", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownMode) {
			t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SHARDCRAWLER_SEED", "ABC")
	t.Setenv("SHARDCRAWLER_DIFFICULTY", "Hard")
	t.Setenv("SHARDCRAWLER_MODE", "real")
	t.Setenv("SHARDCRAWLER_PALETTE", "colorblind")
	t.Setenv("SHARDCRAWLER_AUDIO", "true")
	t.Setenv("SHARDCRAWLER_SHAKE", "0.75")

	cfg, err := ConfigFromEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("ConfigFromEnv() error: %v", err)
	}

	want := Config{
		Seed:        "ABC",
		Difficulty:  gamedata.DifficultyHard,
		Mode:        ModeRealtime,
		Palette:     "colorblind",
		Audio:       true,
		ScreenShake: 0.75,
	}
	if cfg != want {
		t.Errorf("ConfigFromEnv() = %+v, want %+v", cfg, want)
	}
}

func TestConfigFromEnvUnsetKeepsBase(t *testing.T) {
	t.Setenv("SHARDCRAWLER_DIFFICULTY", "")
	t.Setenv("SHARDCRAWLER_MODE", "")

	base := DefaultConfig()
	cfg, err := ConfigFromEnv(base)
	if err != nil {
		t.Fatalf("ConfigFromEnv() error: %v", err)
	}
	if cfg.Difficulty != base.Difficulty || cfg.Mode != base.Mode {
		t.Errorf("ConfigFromEnv() = %+v, want base %+v", cfg, base)
	}
}

func TestConfigFromEnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SHARDCRAWLER_DIFFICULTY", "nightmare"},
		{"SHARDCRAWLER_MODE", "paused"},
		{"SHARDCRAWLER_AUDIO", "loud"},
		{"SHARDCRAWLER_SHAKE", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := ConfigFromEnv(DefaultConfig()); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestConfigSettingsConversion(t *testing.T) {
	cfg := Config{
		Seed:        "xyz",
		CustomSeed:  "xyz",
		Difficulty:  gamedata.DifficultyRelaxed,
		Mode:        ModeRealtime,
		Palette:     "colorblind",
		Audio:       true,
		ScreenShake: 1,
	}
	if got := ConfigFromSettings(DefaultConfig(), cfg.Settings()); got != cfg {
		t.Errorf("ConfigFromSettings(Settings()) = %+v, want %+v", got, cfg)
	}

	bad := storage.Settings{Mode: "warp", Difficulty: "impossible", ScreenShake: -2}
	got := ConfigFromSettings(DefaultConfig(), bad)
	if got.Mode != ModeTurn || got.Difficulty != gamedata.DifficultyStandard || got.ScreenShake != 0 {
		t.Errorf("invalid settings not ignored: %+v", got)
	}
}

func TestLaunchSeedNotPersisted(t *testing.T) {
	stored := storage.Settings{Mode: "turn", Difficulty: "standard", CustomSeed: "saved"}

	tests := []struct {
		name       string
		stored     storage.Settings
		env        string
		wantSeed   string
		wantCustom string
	}{
		{"env seed without stored seed", storage.Settings{}, "one-off", "one-off", ""},
		{"env seed over stored seed", stored, "one-off", "one-off", "saved"},
		{"stored seed only", stored, "", "saved", "saved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("SHARDCRAWLER_SEED", tt.env)
			}
			cfg, err := ConfigFromEnv(ConfigFromSettings(DefaultConfig(), tt.stored))
			if err != nil {
				t.Fatalf("ConfigFromEnv() error: %v", err)
			}
			if cfg.Seed != tt.wantSeed {
				t.Errorf("Seed = %q, want %q", cfg.Seed, tt.wantSeed)
			}

			saved := cfg.Settings()
			if saved.CustomSeed != tt.wantCustom {
				t.Errorf("Settings().CustomSeed = %q, want %q", saved.CustomSeed, tt.wantCustom)
			}

			next := ConfigFromSettings(DefaultConfig(), saved)
			if next.Seed != tt.wantCustom {
				t.Errorf("next launch Seed = %q, want %q", next.Seed, tt.wantCustom)
			}
		})
	}
}

func TestNextPalette(t *testing.T) {
	ids := []string{"default", "colorblind"}
	tests := []struct {
		current string
		ids     []string
		want    string
	}{
		{"default", ids, "colorblind"},
		{"colorblind", ids, "default"},
		{"sepia", ids, "default"},
		{"default", nil, "default"},
	}

	for _, tt := range tests {
		if got := nextPalette(tt.current, tt.ids); got != tt.want {
			t.Errorf("nextPalette(%q, %v) = %q, want %q", tt.current, tt.ids, got, tt.want)
		}
	}
}
