package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps records in PostgreSQL. Each table holds at most one
// row, keyed by a fixed slot name.
type PostgresStore struct {
	db *sql.DB
}

const storeSlot = "local"

// NewPostgresStore connects to connectionString and ensures the schema.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS best_runs (
		slot TEXT PRIMARY KEY,
		seed_string TEXT NOT NULL,
		numeric_seed BIGINT NOT NULL,
		depth_reached INTEGER NOT NULL,
		shards_collected INTEGER NOT NULL,
		turns_taken INTEGER NOT NULL,
		time_ms BIGINT NOT NULL,
		victory BOOLEAN NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS settings (
		slot TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// LoadBestRun returns the stored best run.
func (ps *PostgresStore) LoadBestRun() (RunRecord, error) {
	query := `SELECT seed_string, numeric_seed, depth_reached, shards_collected, turns_taken, time_ms, victory
	FROM best_runs WHERE slot = $1`

	var record RunRecord
	var numericSeed int64
	err := ps.db.QueryRow(query, storeSlot).Scan(
		&record.SeedString, &numericSeed, &record.DepthReached,
		&record.ShardsCollected, &record.TurnsTaken, &record.TimeMs, &record.Victory,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, ErrNotFound
		}
		return RunRecord{}, fmt.Errorf("failed to load best run: %w", err)
	}
	record.NumericSeed = uint32(numericSeed)

	return record, nil
}

// SaveBestRun upserts the best run.
func (ps *PostgresStore) SaveBestRun(record RunRecord) error {
	query := `
	INSERT INTO best_runs (slot, seed_string, numeric_seed, depth_reached, shards_collected, turns_taken, time_ms, victory)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (slot)
	DO UPDATE SET
		seed_string = $2, numeric_seed = $3, depth_reached = $4,
		shards_collected = $5, turns_taken = $6, time_ms = $7, victory = $8,
		updated_at = NOW()
	`

	_, err := ps.db.Exec(query,
		storeSlot, record.SeedString, int64(record.NumericSeed), record.DepthReached,
		record.ShardsCollected, record.TurnsTaken, record.TimeMs, record.Victory)
	if err != nil {
		return fmt.Errorf("failed to save best run: %w", err)
	}

	return nil
}

// LoadSettings merges stored settings over defaults.
func (ps *PostgresStore) LoadSettings(defaults Settings) (Settings, error) {
	var raw []byte
	err := ps.db.QueryRow(`SELECT data FROM settings WHERE slot = $1`, storeSlot).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := defaults
	if err := json.Unmarshal(raw, &settings); err != nil {
		return defaults, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// SaveSettings upserts the settings record.
func (ps *PostgresStore) SaveSettings(settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	query := `
	INSERT INTO settings (slot, data) VALUES ($1, $2)
	ON CONFLICT (slot)
	DO UPDATE SET data = $2, updated_at = NOW()
	`
	if _, err := ps.db.Exec(query, storeSlot, string(raw)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
