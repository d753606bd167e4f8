package checkpoint

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/oncoseed/internal/domain"
)

// SQLiteStore persists checkpoints in a single SQLite database file, for
// runs that want one artifact instead of a directory of JSON documents.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the database and its schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers usable while a stage is being saved.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS checkpoints (
		stage TEXT PRIMARY KEY,
		record_count INTEGER NOT NULL,
		saved_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS checkpoint_records (
		stage TEXT NOT NULL,
		seq INTEGER NOT NULL,
		record TEXT NOT NULL,
		PRIMARY KEY (stage, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_checkpoint_records_stage ON checkpoint_records(stage);
	`

	_, err := db.Exec(schema)
	return err
}

// Save replaces the stage's rows in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, stage string, records []domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM checkpoint_records WHERE stage = ?", stage); err != nil {
		return fmt.Errorf("failed to clear stage %q: %w", stage, err)
	}

	for i, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record %d of stage %q: %w", i, stage, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO checkpoint_records (stage, seq, record) VALUES (?, ?, ?)",
			stage, i, string(data),
		); err != nil {
			return fmt.Errorf("failed to insert record %d of stage %q: %w", i, stage, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO checkpoints (stage, record_count, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(stage) DO UPDATE SET record_count = excluded.record_count, saved_at = excluded.saved_at
	`, stage, len(records), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert checkpoint %q: %w", stage, err)
	}

	return tx.Commit()
}

// Load returns the stage's records in their original order.
func (s *SQLiteStore) Load(ctx context.Context, stage string) ([]domain.Record, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT record_count FROM checkpoints WHERE stage = ?", stage,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: stage %q", ErrMissingCheckpoint, stage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up checkpoint %q: %w", stage, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT record FROM checkpoint_records WHERE stage = ? ORDER BY seq", stage)
	if err != nil {
		return nil, fmt.Errorf("failed to query records of %q: %w", stage, err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0, count)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan record of %q: %w", stage, err)
		}
		var rec domain.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record of %q: %w", stage, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes the stage's checkpoint.
func (s *SQLiteStore) Delete(ctx context.Context, stage string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM checkpoint_records WHERE stage = ?", stage); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM checkpoints WHERE stage = ?", stage); err != nil {
		return err
	}
	return tx.Commit()
}

// Stages lists stages with a saved checkpoint, sorted by name.
func (s *SQLiteStore) Stages(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT stage FROM checkpoints ORDER BY stage")
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var stages []string
	for rows.Next() {
		var stage string
		if err := rows.Scan(&stage); err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return stages, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
