// Package storage persists the best run and the player's settings between
// sessions.
package storage

import "errors"

// ErrNotFound is returned when no record has been stored yet.
var ErrNotFound = errors.New("record not found")

// RunRecord is the persisted summary of a finished run.
type RunRecord struct {
	SeedString      string `json:"seedString"`
	NumericSeed     uint32 `json:"numericSeed"`
	DepthReached    int    `json:"depthReached"`
	ShardsCollected int    `json:"shardsCollected"`
	TurnsTaken      int    `json:"turnsTaken"`
	TimeMs          int64  `json:"timeMs"`
	Victory         bool   `json:"victory"`
}

// Settings is the persisted player preference record.
type Settings struct {
	Mode        string  `json:"mode"`       // "turn" or "real"
	Difficulty  string  `json:"difficulty"` // relaxed, standard, hard
	ColorMode   string  `json:"colorMode"`  // Palette id
	Audio       bool    `json:"audio"`
	ScreenShake float64 `json:"screenShake"` // 0 disables shake
	CustomSeed  string  `json:"customSeed,omitempty"`
}

// Store is implemented by every persistence backend.
type Store interface {
	// LoadBestRun returns ErrNotFound when no run has been saved.
	LoadBestRun() (RunRecord, error)
	SaveBestRun(record RunRecord) error
	// LoadSettings overlays stored values on defaults. Fields never stored
	// keep their default.
	LoadSettings(defaults Settings) (Settings, error)
	SaveSettings(settings Settings) error
	Close() error
}
