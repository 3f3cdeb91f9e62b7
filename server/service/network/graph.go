package network

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/bionetlab/stringviz/store"
)

// Mode selects how the subgraph around the seeds is built.
type Mode string

const (
	// ModeInduced keeps only the seed nodes and the edges among them.
	ModeInduced Mode = "induced"
	// ModeExpand admits ranked 1-hop neighbors up to the node budget.
	ModeExpand Mode = "expand"
)

// BuildRequest describes one graph construction.
type BuildRequest struct {
	Queries  []string
	TaxonID  *string
	Variant  store.Variant
	MinScore int
	Mode     Mode
	MaxNodes int
}

// Graph is the request-scoped result of a build: resolution rows for every
// input query, the final node sequence (seeds first, then admitted neighbors
// by rank), the deduplicated edge set, and a display name per node. It is
// discarded after the response is produced.
type Graph struct {
	Resolution []*ResolvedIdentifier
	Nodes      []string
	Edges      []*store.Edge
	Attributes map[string]string
}

// NodeRow is one record of the exported node table.
type NodeRow struct {
	ProteinID     string `json:"proteinId"`
	PreferredName string `json:"preferredName"`
	Degree        int    `json:"degree"`
}

// EdgeRow is one record of the exported edge table.
type EdgeRow struct {
	P1       string  `json:"p1"`
	P2       string  `json:"p2"`
	ScoreInt int     `json:"scoreInt"`
	Score    float64 `json:"score"`
}

// BuildGraph runs the full pipeline: resolve queries, derive the seed set,
// fetch or expand the subgraph, and attach display names. An empty resolved
// seed set is not an error; the caller gets the resolution rows and an empty
// graph and decides what to surface.
func (s *Service) BuildGraph(ctx context.Context, req *BuildRequest) (*Graph, error) {
	if req.Mode == "" {
		req.Mode = ModeInduced
	}
	if req.Mode != ModeInduced && req.Mode != ModeExpand {
		return nil, errors.Errorf("unknown build mode %q", string(req.Mode))
	}
	if _, err := req.Variant.Table(); err != nil {
		return nil, err
	}

	resolution, err := s.resolver.Resolve(ctx, req.Queries, req.TaxonID)
	if err != nil {
		return nil, err
	}

	graph := &Graph{
		Resolution: resolution,
		Nodes:      []string{},
		Edges:      []*store.Edge{},
		Attributes: map[string]string{},
	}

	seeds := SeedIDs(resolution)
	if len(seeds) == 0 {
		return graph, nil
	}

	var nodes []string
	var edges []*store.Edge
	if req.Mode == ModeExpand {
		nodes, edges, err = s.Expand1Hop(ctx, seeds, req.MinScore, req.Variant, req.MaxNodes)
	} else {
		nodes = seeds
		edges, err = s.store.ListEdgesInduced(ctx, nodes, req.MinScore, req.Variant)
	}
	if err != nil {
		return nil, err
	}

	// Induced mode can still exceed the budget when many seeds resolve.
	if req.MaxNodes > 0 && len(nodes) > req.MaxNodes {
		nodes = nodes[:req.MaxNodes]
	}

	// Canonical-pair ordering keeps responses reproducible across runs.
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].P1 != edges[j].P1 {
			return edges[i].P1 < edges[j].P1
		}
		return edges[i].P2 < edges[j].P2
	})

	attrs, err := s.GetAttributes(ctx, nodes)
	if err != nil {
		return nil, err
	}

	graph.Nodes = nodes
	graph.Edges = edges
	graph.Attributes = attrs
	return graph, nil
}

// DisplayName returns the display name for id, falling back to the id.
func (g *Graph) DisplayName(id string) string {
	if name, ok := g.Attributes[id]; ok && name != "" {
		return name
	}
	return id
}

// degrees counts, per node, the edges of the final edge set touching it.
func (g *Graph) degrees() map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for _, id := range g.Nodes {
		deg[id] = 0
	}
	for _, e := range g.Edges {
		if _, ok := deg[e.P1]; ok {
			deg[e.P1]++
		}
		if _, ok := deg[e.P2]; ok {
			deg[e.P2]++
		}
	}
	return deg
}

// NodeTable renders the node export table in node order.
func (g *Graph) NodeTable() []NodeRow {
	deg := g.degrees()
	rows := make([]NodeRow, 0, len(g.Nodes))
	for _, id := range g.Nodes {
		rows = append(rows, NodeRow{
			ProteinID:     id,
			PreferredName: g.DisplayName(id),
			Degree:        deg[id],
		})
	}
	return rows
}

// EdgeTable renders the edge export table in canonical edge order. The float
// score is the stored integer confidence mapped back onto [0, 1].
func (g *Graph) EdgeTable() []EdgeRow {
	rows := make([]EdgeRow, 0, len(g.Edges))
	for _, e := range g.Edges {
		rows = append(rows, EdgeRow{
			P1:       e.P1,
			P2:       e.P2,
			ScoreInt: e.Score,
			Score:    float64(e.Score) / 1000.0,
		})
	}
	return rows
}
