package store

import (
	"context"
)

// Protein is the object representing a node in the interaction graph.
// Records are owned by the ingestion scripts and never mutated here.
type Protein struct {
	ID            string
	PreferredName string
	Annotation    string
}

// FindProtein is the find condition for protein.
type FindProtein struct {
	// ID matches the primary key exactly (case-sensitive).
	ID *string
	// IDs matches any of the given primary keys.
	IDs []string
}

// GetProtein returns the protein with the given primary key, or nil when no
// such record exists. Absence is not an error.
func (s *Store) GetProtein(ctx context.Context, find *FindProtein) (*Protein, error) {
	return s.driver.GetProtein(ctx, find)
}

// ListProteins lists proteins with filter. When find.IDs is larger than the
// query window it is split into batches and the results merged; ordering
// across batches follows the input id order.
func (s *Store) ListProteins(ctx context.Context, find *FindProtein) ([]*Protein, error) {
	if len(find.IDs) == 0 {
		return s.driver.ListProteins(ctx, find)
	}

	list := make([]*Protein, 0, len(find.IDs))
	for _, window := range windows(find.IDs, s.batchWindow()) {
		batch, err := s.driver.ListProteins(ctx, &FindProtein{IDs: window})
		if err != nil {
			return nil, err
		}
		list = append(list, batch...)
	}
	return list, nil
}
