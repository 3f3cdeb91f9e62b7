package db

import (
	"github.com/pkg/errors"

	"github.com/bionetlab/stringviz/internal/profile"
	"github.com/bionetlab/stringviz/store"
	"github.com/bionetlab/stringviz/store/db/postgres"
	"github.com/bionetlab/stringviz/store/db/sqlite"
)

// ============================================================================
// DATABASE SUPPORT POLICY
// ============================================================================
// This project supports only SQLite and PostgreSQL databases.
//
// SQLite: Primary. The ingestion scripts emit a single database file.
// PostgreSQL: Secondary, for shared deployments of the same schema.
// ============================================================================

// NewDBDriver creates new db driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'sqlite' and 'postgres' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
