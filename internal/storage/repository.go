// Package storage persists the dedup state between runs.
package storage

import (
	"context"

	"intern-watch/internal/dedup"
)

// Repository loads and saves the dedup state. Load returns an empty state
// when no prior state exists; drivers return an error only for storage that
// is present but unreadable, and callers degrade that to an empty state.
type Repository interface {
	Load(ctx context.Context) (*dedup.State, error)

	// Save writes the full state durably. All-or-nothing per run; no
	// partial writes.
	Save(ctx context.Context, state *dedup.State) error

	Close() error
}
