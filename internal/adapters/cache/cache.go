// Package cache provides an optional read-through cache for season
// standings.
package cache

import (
	"context"

	"github.com/seasonal/ladder/internal/domain/tablesort"
)

// Standings caches the unsorted standings rows of a season. Mutations to
// a season must invalidate its entry; sorting happens after the cache.
type Standings interface {
	// Get returns the cached rows for a season and whether they were
	// present.
	Get(ctx context.Context, seasonID string) ([]tablesort.PlayerRow, bool, error)

	// Set stores the rows for a season.
	Set(ctx context.Context, seasonID string, rows []tablesort.PlayerRow) error

	// Invalidate drops the cached rows for a season.
	Invalidate(ctx context.Context, seasonID string) error

	// Close releases any underlying connections.
	Close() error
}

// Noop is a Standings implementation that caches nothing. It is the
// default when no cache backend is configured.
type Noop struct{}

// NewNoop creates a no-op standings cache.
func NewNoop() Noop { return Noop{} }

// Get always misses.
func (Noop) Get(context.Context, string) ([]tablesort.PlayerRow, bool, error) {
	return nil, false, nil
}

// Set discards the rows.
func (Noop) Set(context.Context, string, []tablesort.PlayerRow) error { return nil }

// Invalidate does nothing.
func (Noop) Invalidate(context.Context, string) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }
