// Package test provides an in-memory store driver for exercising the graph
// engine and API layers without a database file.
package test

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bionetlab/stringviz/internal/profile"
	"github.com/bionetlab/stringviz/store"
)

// MemoryDriver is a store.Driver over fixture slices. Query semantics mirror
// the SQL drivers: exact-case primary-key lookup, case-insensitive alias
// lookup, edge finds anchored on the p1 or p2 column.
type MemoryDriver struct {
	Proteins []*store.Protein
	Aliases  []*store.Alias
	Edges    map[store.Variant][]*store.Edge

	// Err, when set, is returned from every lookup to simulate a store
	// connectivity failure.
	Err error
}

// NewTestingStore wraps a MemoryDriver in a Store with default tunables.
func NewTestingStore(driver *MemoryDriver) *store.Store {
	return store.New(driver, &profile.Profile{
		BatchWindow:         900,
		MaxNodesCeiling:     2000,
		AliasCandidateLimit: 50,
	})
}

func (d *MemoryDriver) GetDB() *sql.DB { return nil }
func (d *MemoryDriver) Close() error   { return nil }

func (d *MemoryDriver) IsInitialized(context.Context) (bool, error) {
	if d.Err != nil {
		return false, d.Err
	}
	return true, nil
}

func (d *MemoryDriver) GetProtein(_ context.Context, find *store.FindProtein) (*store.Protein, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	if find.ID == nil {
		return nil, nil
	}
	for _, p := range d.Proteins {
		if p.ID == *find.ID {
			return p, nil
		}
	}
	return nil, nil
}

func (d *MemoryDriver) ListProteins(_ context.Context, find *store.FindProtein) ([]*store.Protein, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	wanted := make(map[string]bool, len(find.IDs))
	for _, id := range find.IDs {
		wanted[id] = true
	}
	list := make([]*store.Protein, 0)
	for _, p := range d.Proteins {
		if wanted[p.ID] {
			list = append(list, p)
		}
	}
	return list, nil
}

func (d *MemoryDriver) ListAliases(_ context.Context, find *store.FindAlias) ([]*store.Alias, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	list := make([]*store.Alias, 0)
	for _, a := range d.Aliases {
		if find.Alias != nil && !strings.EqualFold(a.Alias, *find.Alias) {
			continue
		}
		if find.TaxonID != nil && a.TaxonID != *find.TaxonID {
			continue
		}
		list = append(list, a)
		if find.Limit != nil && len(list) >= *find.Limit {
			break
		}
	}
	return list, nil
}

func (d *MemoryDriver) ListEdges(_ context.Context, find *store.FindEdge) ([]*store.Edge, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	anchors := make(map[string]bool)
	byP1 := len(find.P1In) > 0
	for _, id := range find.P1In {
		anchors[id] = true
	}
	for _, id := range find.P2In {
		anchors[id] = true
	}

	list := make([]*store.Edge, 0)
	for _, e := range d.Edges[find.Variant] {
		if e.Score < find.MinScore {
			continue
		}
		if byP1 && anchors[e.P1] {
			list = append(list, e)
		}
		if !byP1 && anchors[e.P2] {
			list = append(list, e)
		}
	}
	return list, nil
}
