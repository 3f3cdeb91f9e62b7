package network

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/bionetlab/stringviz/store"
)

// Expand1Hop grows the seed set by its direct neighbors, ranked by the sum of
// edge scores connecting each candidate to the seeds, until maxNodes is
// reached. The returned node sequence lists the seeds first (first-occurrence
// order) followed by admitted neighbors in rank order, and never exceeds
// maxNodes. The edge list is the induced subgraph over the final node set, so
// it also covers neighbor-to-neighbor edges the adjacency pass cannot rank.
func (s *Service) Expand1Hop(ctx context.Context, seeds []string, minScore int, variant store.Variant, maxNodes int) ([]string, []*store.Edge, error) {
	seedSet := make(map[string]bool, len(seeds))
	nodes := make([]string, 0, len(seeds))
	for _, id := range seeds {
		if seedSet[id] {
			continue
		}
		seedSet[id] = true
		nodes = append(nodes, id)
	}
	if len(nodes) == 0 {
		return []string{}, []*store.Edge{}, nil
	}

	adjacent, err := s.store.ListEdgesAdjacent(ctx, nodes, minScore, variant)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to fetch adjacent edges")
	}

	// Accumulate each candidate neighbor's total edge score toward the seed
	// set. The fold is order-independent, so batch order never affects the
	// ranking. Edges with both endpoints inside (or outside) the seed set
	// touch no rankable neighbor and contribute nothing.
	neighborScore := make(map[string]int)
	for _, e := range adjacent {
		p1Seed, p2Seed := seedSet[e.P1], seedSet[e.P2]
		switch {
		case p1Seed && !p2Seed:
			neighborScore[e.P2] += e.Score
		case p2Seed && !p1Seed:
			neighborScore[e.P1] += e.Score
		}
	}

	if len(nodes) < maxNodes && len(neighborScore) > 0 {
		type ranked struct {
			id    string
			score int
		}
		candidates := make([]ranked, 0, len(neighborScore))
		for id, score := range neighborScore {
			candidates = append(candidates, ranked{id: id, score: score})
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			return candidates[i].id < candidates[j].id
		})

		remain := maxNodes - len(nodes)
		if remain > len(candidates) {
			remain = len(candidates)
		}
		for _, c := range candidates[:remain] {
			nodes = append(nodes, c.id)
		}
	}

	// The budget bound holds even when the seed list itself overflows it.
	if len(nodes) > maxNodes && maxNodes > 0 {
		nodes = nodes[:maxNodes]
	}

	induced, err := s.store.ListEdgesInduced(ctx, nodes, minScore, variant)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to fetch induced edges")
	}
	return nodes, induced, nil
}
