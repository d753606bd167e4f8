package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oncoseed/internal/domain"
)

// FileStore persists one JSON document per stage under a directory. It is
// the default backend and the reference implementation of the checkpoint
// file contract.
type FileStore struct {
	dir string
}

// NewFileStore creates the checkpoint directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(stage string) string {
	return filepath.Join(s.dir, stage+".json")
}

// Save writes the stage's snapshot atomically (write to a temp file, then
// rename over the target).
func (s *FileStore) Save(_ context.Context, stage string, records []domain.Record) error {
	snap := newSnapshot(stage, records)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint %q: %w", stage, err)
	}

	tmp := s.path(stage) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint %q: %w", stage, err)
	}
	if err := os.Rename(tmp, s.path(stage)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize checkpoint %q: %w", stage, err)
	}
	return nil
}

// Load reads the stage's snapshot.
func (s *FileStore) Load(_ context.Context, stage string) ([]domain.Record, error) {
	data, err := os.ReadFile(s.path(stage))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: stage %q", ErrMissingCheckpoint, stage)
		}
		return nil, fmt.Errorf("failed to read checkpoint %q: %w", stage, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint %q: %w", stage, err)
	}
	if snap.Records == nil {
		snap.Records = []domain.Record{}
	}
	return snap.Records, nil
}

// Delete removes the stage's checkpoint file if present.
func (s *FileStore) Delete(_ context.Context, stage string) error {
	if err := os.Remove(s.path(stage)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete checkpoint %q: %w", stage, err)
	}
	return nil
}

// Stages lists stages with a checkpoint file, sorted by name.
func (s *FileStore) Stages(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	var stages []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		stages = append(stages, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(stages)
	return stages, nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
