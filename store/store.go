package store

import (
	"context"

	"github.com/bionetlab/stringviz/internal/profile"
)

// Store provides database access to all raw objects.
// Every request reads the store fresh; nothing is cached across requests, so
// results track the underlying database exactly.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) IsInitialized(ctx context.Context) (bool, error) {
	return s.driver.IsInitialized(ctx)
}

// batchWindow returns the configured IN-list window size.
func (s *Store) batchWindow() int {
	if s.profile != nil && s.profile.BatchWindow > 0 {
		return s.profile.BatchWindow
	}
	return defaultBatchWindow
}
