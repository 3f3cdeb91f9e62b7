package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/pkg/errors"
	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/bionetlab/stringviz/internal/profile"
	"github.com/bionetlab/stringviz/store"
)

// ============================================================================
// SQLITE SUPPORT (Primary)
// ============================================================================
// SQLite is the primary store: the interaction database is a single file
// produced by the ingestion scripts and opened here read-only. Bound-variable
// limits are the origin of the batch windowing in the store facade.
// ============================================================================

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a connection to the SQLite database at profile.DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("sqlite", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// The file is read-only shared state; a single connection avoids
	// SQLITE_BUSY churn without any throughput cost for lookups.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		slog.Error("failed to ping database", slog.String("dsn", profile.DSN), slog.String("error", err.Error()))
		return nil, errors.Wrap(err, "failed to ping database")
	}

	for _, pragma := range []string{
		"PRAGMA query_only = ON;",
		"PRAGMA temp_store = MEMORY;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, errors.Wrapf(err, "failed to apply %s", pragma)
		}
	}

	var driver store.Driver = &DB{
		db:      db,
		profile: profile,
	}
	return driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) IsInitialized(ctx context.Context) (bool, error) {
	var exists bool
	err := d.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'proteins')").Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to check if database is initialized")
	}
	return exists, nil
}
