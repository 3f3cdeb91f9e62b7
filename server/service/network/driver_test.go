package network

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bionetlab/stringviz/internal/profile"
	"github.com/bionetlab/stringviz/store"
)

// fakeDriver is an in-memory store.Driver mirroring the real drivers' query
// semantics: exact-case primary-key lookup, case-insensitive alias lookup,
// and edge finds anchored on p1 or p2.
type fakeDriver struct {
	proteins []*store.Protein
	aliases  []*store.Alias
	edges    map[store.Variant][]*store.Edge

	failing bool
}

var errStoreDown = sql.ErrConnDone

func (d *fakeDriver) GetDB() *sql.DB { return nil }
func (d *fakeDriver) Close() error   { return nil }

func (d *fakeDriver) IsInitialized(context.Context) (bool, error) { return true, nil }

func (d *fakeDriver) GetProtein(_ context.Context, find *store.FindProtein) (*store.Protein, error) {
	if d.failing {
		return nil, errStoreDown
	}
	if find.ID == nil {
		return nil, nil
	}
	for _, p := range d.proteins {
		if p.ID == *find.ID {
			return p, nil
		}
	}
	return nil, nil
}

func (d *fakeDriver) ListProteins(_ context.Context, find *store.FindProtein) ([]*store.Protein, error) {
	if d.failing {
		return nil, errStoreDown
	}
	wanted := make(map[string]bool, len(find.IDs))
	for _, id := range find.IDs {
		wanted[id] = true
	}
	list := make([]*store.Protein, 0)
	for _, p := range d.proteins {
		if wanted[p.ID] {
			list = append(list, p)
		}
	}
	return list, nil
}

func (d *fakeDriver) ListAliases(_ context.Context, find *store.FindAlias) ([]*store.Alias, error) {
	if d.failing {
		return nil, errStoreDown
	}
	list := make([]*store.Alias, 0)
	for _, a := range d.aliases {
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

func (d *fakeDriver) ListEdges(_ context.Context, find *store.FindEdge) ([]*store.Edge, error) {
	if d.failing {
		return nil, errStoreDown
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
	for _, e := range d.edges[find.Variant] {
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

func newTestService(driver store.Driver, opts ...ResolverOption) *Service {
	s := store.New(driver, &profile.Profile{BatchWindow: 900})
	return NewService(s, opts...)
}

// scenarioDriver builds the four-node fixture used across expander tests:
// nodes A..D, edges (A,B,500), (A,C,900), (B,C,100), (C,D,950).
func scenarioDriver() *fakeDriver {
	return &fakeDriver{
		proteins: []*store.Protein{
			{ID: "A", PreferredName: "protA"},
			{ID: "B", PreferredName: "protB"},
			{ID: "C", PreferredName: "protC"},
			{ID: "D", PreferredName: "protD"},
		},
		edges: map[store.Variant][]*store.Edge{
			store.VariantFunctional: {
				{P1: "A", P2: "B", Score: 500},
				{P1: "A", P2: "C", Score: 900},
				{P1: "B", P2: "C", Score: 100},
				{P1: "C", P2: "D", Score: 950},
			},
		},
	}
}
