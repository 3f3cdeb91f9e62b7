package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
// The interaction database is read-only: drivers expose lookups only,
// ingestion is owned by the build scripts.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Protein model related methods.
	GetProtein(ctx context.Context, find *FindProtein) (*Protein, error)
	ListProteins(ctx context.Context, find *FindProtein) ([]*Protein, error)

	// Alias model related methods.
	ListAliases(ctx context.Context, find *FindAlias) ([]*Alias, error)

	// Edge model related methods. The identifier lists in find must already
	// fit in one query window; the Store facade does the windowing.
	ListEdges(ctx context.Context, find *FindEdge) ([]*Edge, error)
}
