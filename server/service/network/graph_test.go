package network

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bionetlab/stringviz/store"
)

func TestBuildGraphInduced(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(scenarioDriver())

	graph, err := svc.BuildGraph(ctx, &BuildRequest{
		Queries:  []string{"A", "B", "C"},
		Variant:  store.VariantFunctional,
		MinScore: 0,
		Mode:     ModeInduced,
		MaxNodes: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, graph.Nodes)
	require.Len(t, graph.Edges, 3)
	// Canonical edge ordering.
	assert.Equal(t, &store.Edge{P1: "A", P2: "B", Score: 500}, graph.Edges[0])
	assert.Equal(t, &store.Edge{P1: "A", P2: "C", Score: 900}, graph.Edges[1])
	assert.Equal(t, &store.Edge{P1: "B", P2: "C", Score: 100}, graph.Edges[2])
	assert.Equal(t, "protA", graph.Attributes["A"])
}

func TestBuildGraphExpand(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(scenarioDriver())

	graph, err := svc.BuildGraph(ctx, &BuildRequest{
		Queries:  []string{"A"},
		Variant:  store.VariantFunctional,
		Mode:     ModeExpand,
		MaxNodes: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, graph.Nodes)
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, &store.Edge{P1: "A", P2: "C", Score: 900}, graph.Edges[0])
}

func TestBuildGraphEmptyQueries(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(scenarioDriver())

	graph, err := svc.BuildGraph(ctx, &BuildRequest{
		Queries:  nil,
		Variant:  store.VariantFunctional,
		Mode:     ModeInduced,
		MaxNodes: 300,
	})
	require.NoError(t, err)
	assert.Empty(t, graph.Resolution)
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Edges)
	assert.Empty(t, graph.Attributes)
}

func TestBuildGraphNothingResolves(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(scenarioDriver())

	graph, err := svc.BuildGraph(ctx, &BuildRequest{
		Queries:  []string{"NOPE1", "NOPE2"},
		Variant:  store.VariantFunctional,
		Mode:     ModeExpand,
		MaxNodes: 300,
	})
	require.NoError(t, err)
	require.Len(t, graph.Resolution, 2)
	assert.Equal(t, StatusUnresolved, graph.Resolution[0].Status)
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Edges)
}

func TestBuildGraphRejectsUnknownVariant(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(scenarioDriver())

	_, err := svc.BuildGraph(ctx, &BuildRequest{
		Queries: []string{"A"},
		Variant: store.Variant("regulatory"),
		Mode:    ModeInduced,
	})
	require.Error(t, err)
}

func TestBuildGraphRejectsUnknownMode(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(scenarioDriver())

	_, err := svc.BuildGraph(ctx, &BuildRequest{
		Queries: []string{"A"},
		Variant: store.VariantFunctional,
		Mode:    Mode("2-hop"),
	})
	require.Error(t, err)
}

func TestBuildGraphAttributeFallback(t *testing.T) {
	ctx := context.Background()
	driver := scenarioDriver()
	// Strip D's protein record; the id still appears via edges.
	driver.proteins = driver.proteins[:3]
	svc := newTestService(driver)

	graph, err := svc.BuildGraph(ctx, &BuildRequest{
		Queries:  []string{"C"},
		Variant:  store.VariantFunctional,
		Mode:     ModeExpand,
		MaxNodes: 10,
	})
	require.NoError(t, err)
	assert.Contains(t, graph.Nodes, "D")
	assert.Equal(t, "D", graph.Attributes["D"], "missing record falls back to the id")
}

func TestNodeTableDegrees(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(scenarioDriver())

	graph, err := svc.BuildGraph(ctx, &BuildRequest{
		Queries:  []string{"A", "B", "C"},
		Variant:  store.VariantFunctional,
		Mode:     ModeInduced,
		MaxNodes: 300,
	})
	require.NoError(t, err)

	rows := graph.NodeTable()
	require.Len(t, rows, 3)
	assert.Equal(t, NodeRow{ProteinID: "A", PreferredName: "protA", Degree: 2}, rows[0])
	assert.Equal(t, NodeRow{ProteinID: "B", PreferredName: "protB", Degree: 2}, rows[1])
	assert.Equal(t, NodeRow{ProteinID: "C", PreferredName: "protC", Degree: 2}, rows[2])
}

func TestEdgeTableScoreMapping(t *testing.T) {
	graph := &Graph{
		Edges: []*store.Edge{
			{P1: "A", P2: "B", Score: 500},
			{P1: "A", P2: "C", Score: 1000},
		},
	}
	rows := graph.EdgeTable()
	require.Len(t, rows, 2)
	assert.Equal(t, EdgeRow{P1: "A", P2: "B", ScoreInt: 500, Score: 0.5}, rows[0])
	assert.Equal(t, EdgeRow{P1: "A", P2: "C", ScoreInt: 1000, Score: 1.0}, rows[1])
}

func TestBuildGraphStoreFailure(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeDriver{failing: true})

	_, err := svc.BuildGraph(ctx, &BuildRequest{
		Queries: []string{"A"},
		Variant: store.VariantFunctional,
		Mode:    ModeInduced,
	})
	require.Error(t, err, "store failures surface as whole-request errors")
}
