package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var _ Store = (*JSONStore)(nil)
var _ Store = (*PostgresStore)(nil)

func TestJSONStoreCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore() error: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}
	if _, err := store.LoadBestRun(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadBestRun() on empty store error = %v, want ErrNotFound", err)
	}
}

func TestJSONStoreBestRunPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	record := RunRecord{
		SeedString:      "ABC",
		NumericSeed:     3735928559,
		DepthReached:    4,
		ShardsCollected: 37,
		TurnsTaken:      512,
		TimeMs:          90500,
		Victory:         false,
	}

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore() error: %v", err)
	}
	if err := store.SaveBestRun(record); err != nil {
		t.Fatalf("SaveBestRun() error: %v", err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, err := reopened.LoadBestRun()
	if err != nil {
		t.Fatalf("LoadBestRun() error: %v", err)
	}
	if got != record {
		t.Errorf("LoadBestRun() = %+v, want %+v", got, record)
	}
}

func TestJSONStoreSettingsMergeDefaults(t *testing.T) {
	defaults := Settings{Mode: "turn", Difficulty: "standard", ColorMode: "default"}

	tests := []struct {
		name string
		file string
		want Settings
	}{
		{
			name: "no settings stored",
			file: `{}`,
			want: defaults,
		},
		{
			name: "partial settings",
			file: `{"settings": {"difficulty": "hard", "audio": true}}`,
			want: Settings{Mode: "turn", Difficulty: "hard", ColorMode: "default", Audio: true},
		},
		{
			name: "full settings",
			file: `{"settings": {"mode": "real", "difficulty": "relaxed", "colorMode": "colorblind", "screenShake": 0.5, "customSeed": "xyz"}}`,
			want: Settings{Mode: "real", Difficulty: "relaxed", ColorMode: "colorblind", ScreenShake: 0.5, CustomSeed: "xyz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "store.json")
			if err := os.WriteFile(path, []byte(tt.file), 0o644); err != nil {
				t.Fatal(err)
			}

			store, err := NewJSONStore(path)
			if err != nil {
				t.Fatalf("NewJSONStore() error: %v", err)
			}
			got, err := store.LoadSettings(defaults)
			if err != nil {
				t.Fatalf("LoadSettings() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LoadSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestJSONStoreSaveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore() error: %v", err)
	}

	want := Settings{Mode: "real", Difficulty: "hard", ColorMode: "colorblind", Audio: true, ScreenShake: 1}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, err := reopened.LoadSettings(Settings{Mode: "turn"})
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, want %+v", got, want)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewJSONStore(path); err == nil {
		t.Error("expected error for corrupt store file")
	}
}
