// Package checkpoint persists each pipeline stage's accepted entity
// collection so later stages, and later process invocations, can resume
// from any midpoint without regenerating upstream data.
//
// A checkpoint is written once per stage per run; re-saving a stage
// replaces only that stage's checkpoint. Loading a stage that was never
// saved returns ErrMissingCheckpoint, which is a fatal precondition failure
// for any stage that depends on it — distinct from loading a present but
// empty collection, which is a valid non-fatal input.
package checkpoint

import (
	"context"
	"errors"
	"time"

	"github.com/oncoseed/internal/domain"
)

// ErrMissingCheckpoint reports that no checkpoint exists for the requested
// stage.
var ErrMissingCheckpoint = errors.New("missing checkpoint")

// SnapshotVersion is the format version written into every checkpoint
// envelope.
const SnapshotVersion = "1.0"

// Snapshot is the durable envelope for one stage's collection.
type Snapshot struct {
	Version string          `json:"version"`
	Stage   string          `json:"stage"`
	SavedAt time.Time       `json:"savedAt"`
	Count   int             `json:"count"`
	Records []domain.Record `json:"records"`
}

// Store persists and restores per-stage entity collections.
type Store interface {
	// Save replaces the named stage's checkpoint with the given records.
	// Other stages' checkpoints are never touched.
	Save(ctx context.Context, stage string, records []domain.Record) error

	// Load returns the named stage's records, or ErrMissingCheckpoint.
	// A present checkpoint with zero records loads as an empty slice.
	Load(ctx context.Context, stage string) ([]domain.Record, error)

	// Delete removes the named stage's checkpoint if present.
	Delete(ctx context.Context, stage string) error

	// Stages lists the stages that currently have a checkpoint.
	Stages(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

func newSnapshot(stage string, records []domain.Record) *Snapshot {
	if records == nil {
		records = []domain.Record{}
	}
	return &Snapshot{
		Version: SnapshotVersion,
		Stage:   stage,
		SavedAt: time.Now().UTC(),
		Count:   len(records),
		Records: records,
	}
}
