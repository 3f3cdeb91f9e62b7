package store

import (
	"context"
)

// Alias is one external identifier mapped onto a protein. A single alias
// string may map to several proteins; ambiguity is the resolver's problem,
// not the store's.
type Alias struct {
	Alias     string
	ProteinID string
	Source    string
	TaxonID   string
	// PreferredName is joined in from the proteins table; empty when the
	// alias points at an id with no protein record.
	PreferredName string
}

// FindAlias is the find condition for alias.
type FindAlias struct {
	// Alias matches case-insensitively.
	Alias *string
	// TaxonID narrows the lookup to one organism when set.
	TaxonID *string
	// Limit caps the number of rows returned.
	Limit *int
}

// ListAliases lists alias rows with filter.
func (s *Store) ListAliases(ctx context.Context, find *FindAlias) ([]*Alias, error) {
	return s.driver.ListAliases(ctx, find)
}
