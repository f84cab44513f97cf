package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore keeps records in a single local JSON file.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

// jsonData is the on-disk layout. Settings are held raw so a partial record
// can be merged over defaults on load.
type jsonData struct {
	BestRun  *RunRecord      `json:"bestRun,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// NewJSONStore opens filePath, creating it and its directory if needed.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data:     &jsonData{},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
		return store, nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create JSON store directory: %w", err)
	}
	if err := store.saveToFile(); err != nil {
		return nil, fmt.Errorf("failed to create JSON store file: %w", err)
	}
	return store, nil
}

// DefaultPath returns the store location under the user config directory,
// falling back to the working directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "shardcrawler.json"
	}
	return filepath.Join(dir, "shardcrawler", "store.json")
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if len(file) == 0 {
		return nil
	}
	return json.Unmarshal(file, js.data)
}

func (js *JSONStore) saveToFile() error {
	js.mutex.RLock()
	data, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0o644)
}

// LoadBestRun returns the stored best run.
func (js *JSONStore) LoadBestRun() (RunRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	if js.data.BestRun == nil {
		return RunRecord{}, ErrNotFound
	}
	return *js.data.BestRun, nil
}

// SaveBestRun replaces the stored best run.
func (js *JSONStore) SaveBestRun(record RunRecord) error {
	js.mutex.Lock()
	js.data.BestRun = &record
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadSettings merges stored settings over defaults.
func (js *JSONStore) LoadSettings(defaults Settings) (Settings, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	settings := defaults
	if len(js.data.Settings) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(js.data.Settings, &settings); err != nil {
		return defaults, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// SaveSettings replaces the stored settings.
func (js *JSONStore) SaveSettings(settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	js.mutex.Lock()
	js.data.Settings = raw
	js.mutex.Unlock()

	return js.saveToFile()
}

// Close is a no-op for the JSON store.
func (js *JSONStore) Close() error {
	return nil
}
