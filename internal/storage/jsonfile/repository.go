// Package jsonfile stores the dedup state as a single JSON file, matching
// the deployment where state rides along in the repository checkout.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"intern-watch/internal/dedup"
	"intern-watch/internal/observability"
	"intern-watch/internal/storage"
)

type Repository struct {
	path   string
	logger *observability.Logger
}

func NewRepository(path string, logger *observability.Logger) *Repository {
	return &Repository{path: path, logger: logger}
}

func (r *Repository) Load(ctx context.Context) (*dedup.State, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("no prior state file, starting empty", "path", r.path)
		return dedup.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state, err := storage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode state file %s: %w", r.path, err)
	}
	return state, nil
}

// Save writes via a temp file and rename, so a crash mid-write never leaves
// a truncated state behind.
func (r *Repository) Save(ctx context.Context, state *dedup.State) error {
	data, err := storage.Encode(state)
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return nil
}
