package store

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bionetlab/stringviz/internal/profile"
)

// stubDriver serves canned edges, anchored the way the real drivers do:
// a P1In find matches on the stored p1 column, a P2In find on p2.
type stubDriver struct {
	edges    []*Edge
	proteins []*Protein
	aliases  []*Alias

	edgeCalls []*FindEdge
}

func (d *stubDriver) GetDB() *sql.DB { return nil }
func (d *stubDriver) Close() error   { return nil }

func (d *stubDriver) IsInitialized(context.Context) (bool, error) { return true, nil }

func (d *stubDriver) GetProtein(_ context.Context, find *FindProtein) (*Protein, error) {
	for _, p := range d.proteins {
		if find.ID != nil && p.ID == *find.ID {
			return p, nil
		}
	}
	return nil, nil
}

func (d *stubDriver) ListProteins(_ context.Context, find *FindProtein) ([]*Protein, error) {
	wanted := make(map[string]bool, len(find.IDs))
	for _, id := range find.IDs {
		wanted[id] = true
	}
	list := make([]*Protein, 0)
	for _, p := range d.proteins {
		if wanted[p.ID] {
			list = append(list, p)
		}
	}
	return list, nil
}

func (d *stubDriver) ListAliases(_ context.Context, find *FindAlias) ([]*Alias, error) {
	list := make([]*Alias, 0)
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

func (d *stubDriver) ListEdges(_ context.Context, find *FindEdge) ([]*Edge, error) {
	d.edgeCalls = append(d.edgeCalls, find)

	anchors := make(map[string]bool)
	byP1 := len(find.P1In) > 0
	for _, id := range append(find.P1In, find.P2In...) {
		anchors[id] = true
	}

	list := make([]*Edge, 0)
	for _, e := range d.edges {
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

func newTestStore(driver Driver, window int) *Store {
	return New(driver, &profile.Profile{BatchWindow: window})
}

func sortEdges(edges []*Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].P1 != edges[j].P1 {
			return edges[i].P1 < edges[j].P1
		}
		return edges[i].P2 < edges[j].P2
	})
}

func TestListEdgesInduced(t *testing.T) {
	ctx := context.Background()
	driver := &stubDriver{
		edges: []*Edge{
			{P1: "A", P2: "B", Score: 500},
			{P1: "A", P2: "C", Score: 900},
			{P1: "B", P2: "C", Score: 100},
			{P1: "C", P2: "D", Score: 950},
		},
	}
	s := newTestStore(driver, 900)

	got, err := s.ListEdgesInduced(ctx, []string{"A", "B", "C"}, 0, VariantFunctional)
	require.NoError(t, err)
	sortEdges(got)
	require.Equal(t, []*Edge{
		{P1: "A", P2: "B", Score: 500},
		{P1: "A", P2: "C", Score: 900},
		{P1: "B", P2: "C", Score: 100},
	}, got)
}

func TestListEdgesInducedThreshold(t *testing.T) {
	ctx := context.Background()
	driver := &stubDriver{
		edges: []*Edge{
			{P1: "A", P2: "B", Score: 500},
			{P1: "A", P2: "C", Score: 900},
		},
	}
	s := newTestStore(driver, 900)

	got, err := s.ListEdgesInduced(ctx, []string{"A", "B", "C"}, 600, VariantFunctional)
	require.NoError(t, err)
	require.Equal(t, []*Edge{{P1: "A", P2: "C", Score: 900}}, got)
}

func TestListEdgesInducedEmptySet(t *testing.T) {
	ctx := context.Background()
	driver := &stubDriver{}
	s := newTestStore(driver, 900)

	got, err := s.ListEdgesInduced(ctx, nil, 0, VariantFunctional)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Empty(t, driver.edgeCalls, "no query should be issued for an empty id set")
}

func TestListEdgesInducedExcludesOutsideEndpoints(t *testing.T) {
	ctx := context.Background()
	driver := &stubDriver{
		edges: []*Edge{
			{P1: "A", P2: "Z", Score: 999},
			{P1: "A", P2: "B", Score: 400},
		},
	}
	s := newTestStore(driver, 900)

	got, err := s.ListEdgesInduced(ctx, []string{"A", "B"}, 0, VariantFunctional)
	require.NoError(t, err)
	require.Equal(t, []*Edge{{P1: "A", P2: "B", Score: 400}}, got)
}

func TestListEdgesAdjacentUnionsBothAnchors(t *testing.T) {
	ctx := context.Background()
	driver := &stubDriver{
		edges: []*Edge{
			{P1: "A", P2: "B", Score: 500}, // seed as p1
			{P1: "0X", P2: "A", Score: 700}, // seed as p2
			{P1: "B", P2: "C", Score: 100}, // no seed endpoint
		},
	}
	s := newTestStore(driver, 900)

	got, err := s.ListEdgesAdjacent(ctx, []string{"A"}, 0, VariantFunctional)
	require.NoError(t, err)
	sortEdges(got)
	require.Equal(t, []*Edge{
		{P1: "0X", P2: "A", Score: 700},
		{P1: "A", P2: "B", Score: 500},
	}, got)
	require.Len(t, driver.edgeCalls, 2, "one p1-anchored and one p2-anchored query per window")
}

func TestListEdgesAdjacentDedupKeepsMaxScore(t *testing.T) {
	ctx := context.Background()
	// Same canonical pair visible from both windows: anchored on A via p1 and
	// on B via p2. The stub returns the stored score either way, so force the
	// overlap through two seed windows with window size 1.
	driver := &stubDriver{
		edges: []*Edge{
			{P1: "A", P2: "B", Score: 800},
		},
	}
	s := newTestStore(driver, 1)

	got, err := s.ListEdgesAdjacent(ctx, []string{"A", "B"}, 0, VariantFunctional)
	require.NoError(t, err)
	require.Equal(t, []*Edge{{P1: "A", P2: "B", Score: 800}}, got)
	require.Len(t, driver.edgeCalls, 4, "two anchored queries per window, two windows")
}

func TestMergeMaxScore(t *testing.T) {
	acc := make(map[edgeKey]int)
	mergeMaxScore(acc, []*Edge{{P1: "A", P2: "B", Score: 300}})
	mergeMaxScore(acc, []*Edge{{P1: "A", P2: "B", Score: 700}})
	mergeMaxScore(acc, []*Edge{{P1: "A", P2: "B", Score: 500}})

	got := collectEdges(acc)
	require.Equal(t, []*Edge{{P1: "A", P2: "B", Score: 700}}, got)
}

func TestListProteinsWindowed(t *testing.T) {
	ctx := context.Background()
	driver := &stubDriver{
		proteins: []*Protein{
			{ID: "A", PreferredName: "alpha"},
			{ID: "B", PreferredName: "beta"},
			{ID: "C", PreferredName: "gamma"},
		},
	}
	s := newTestStore(driver, 2)

	got, err := s.ListProteins(ctx, &FindProtein{IDs: []string{"A", "B", "C"}})
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestVariantTable(t *testing.T) {
	table, err := VariantFunctional.Table()
	require.NoError(t, err)
	require.Equal(t, "edges_func", table)

	table, err = VariantPhysical.Table()
	require.NoError(t, err)
	require.Equal(t, "edges_phys", table)

	_, err = Variant("regulatory").Table()
	require.Error(t, err)
}
