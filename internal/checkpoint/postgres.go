package checkpoint

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/oncoseed/internal/domain"
)

// PostgresStore persists checkpoints in PostgreSQL, for environments where
// several operators share one seeding workspace.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an existing connection. The schema is created on
// first use.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewPostgresStoreFromURL opens a connection from a URL and wraps it.
func NewPostgresStoreFromURL(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS checkpoints (
		stage TEXT PRIMARY KEY,
		record_count INTEGER NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS checkpoint_records (
		stage TEXT NOT NULL,
		seq INTEGER NOT NULL,
		record JSONB NOT NULL,
		PRIMARY KEY (stage, seq)
	)`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save replaces the stage's rows in one transaction.
func (s *PostgresStore) Save(ctx context.Context, stage string, records []domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM checkpoint_records WHERE stage = $1", stage); err != nil {
		return fmt.Errorf("failed to clear stage %q: %w", stage, err)
	}

	for i, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record %d of stage %q: %w", i, stage, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO checkpoint_records (stage, seq, record) VALUES ($1, $2, $3)",
			stage, i, data,
		); err != nil {
			return fmt.Errorf("failed to insert record %d of stage %q: %w", i, stage, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO checkpoints (stage, record_count, saved_at) VALUES ($1, $2, $3)
		ON CONFLICT (stage) DO UPDATE SET record_count = EXCLUDED.record_count, saved_at = EXCLUDED.saved_at
	`, stage, len(records), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert checkpoint %q: %w", stage, err)
	}

	return tx.Commit()
}

// Load returns the stage's records in their original order.
func (s *PostgresStore) Load(ctx context.Context, stage string) ([]domain.Record, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT record_count FROM checkpoints WHERE stage = $1", stage,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: stage %q", ErrMissingCheckpoint, stage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up checkpoint %q: %w", stage, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT record FROM checkpoint_records WHERE stage = $1 ORDER BY seq", stage)
	if err != nil {
		return nil, fmt.Errorf("failed to query records of %q: %w", stage, err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0, count)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan record of %q: %w", stage, err)
		}
		var rec domain.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record of %q: %w", stage, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes the stage's checkpoint.
func (s *PostgresStore) Delete(ctx context.Context, stage string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM checkpoint_records WHERE stage = $1", stage); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM checkpoints WHERE stage = $1", stage); err != nil {
		return err
	}
	return tx.Commit()
}

// Stages lists stages with a saved checkpoint, sorted by name.
func (s *PostgresStore) Stages(ctx context.Context) ([]string, error) {
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
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
