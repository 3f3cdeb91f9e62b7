package store

import (
	"context"

	"github.com/pkg/errors"
)

// Variant names one edge-set partition over the node universe.
type Variant string

const (
	// VariantFunctional is the functional-association network (links).
	VariantFunctional Variant = "functional"
	// VariantPhysical is the physical-interaction network (physical.links).
	VariantPhysical Variant = "physical"
)

// Table maps the variant onto its edge table. Table names come from this
// fixed mapping only; they are never interpolated from request input.
func (v Variant) Table() (string, error) {
	switch v {
	case VariantFunctional:
		return "edges_func", nil
	case VariantPhysical:
		return "edges_phys", nil
	default:
		return "", errors.Errorf("unknown network variant %q", string(v))
	}
}

// Edge is an undirected association stored once in canonical order P1 < P2.
// Score is a confidence value in [0, 1000], not an interaction strength.
type Edge struct {
	P1    string
	P2    string
	Score int
}

// FindEdge is the find condition for edge. Exactly one of P1In / P2In is set
// per driver call; both lists must fit in one query window.
type FindEdge struct {
	Variant  Variant
	MinScore int
	P1In     []string
	P2In     []string
}

type edgeKey struct {
	p1 string
	p2 string
}

// mergeMaxScore folds edges into acc keyed by canonical pair, keeping the
// highest score seen for a pair. Overlapping batches may report the same
// pair twice; the fold is order-independent.
func mergeMaxScore(acc map[edgeKey]int, edges []*Edge) {
	for _, e := range edges {
		key := edgeKey{p1: e.P1, p2: e.P2}
		if score, ok := acc[key]; !ok || e.Score > score {
			acc[key] = e.Score
		}
	}
}

func collectEdges(acc map[edgeKey]int) []*Edge {
	list := make([]*Edge, 0, len(acc))
	for key, score := range acc {
		list = append(list, &Edge{P1: key.p1, P2: key.p2, Score: score})
	}
	return list
}

// ListEdgesInduced returns every edge of the variant with score >= minScore
// and both endpoints in ids. The id list is windowed on the p1 side; the p2
// endpoint is filtered in memory, which stays cheap because the caller's node
// set is bounded by the node budget.
func (s *Store) ListEdgesInduced(ctx context.Context, ids []string, minScore int, variant Variant) ([]*Edge, error) {
	if len(ids) == 0 {
		return []*Edge{}, nil
	}

	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	acc := make(map[edgeKey]int)
	for _, window := range windows(ids, s.batchWindow()) {
		batch, err := s.driver.ListEdges(ctx, &FindEdge{
			Variant:  variant,
			MinScore: minScore,
			P1In:     window,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list induced edges")
		}
		kept := batch[:0]
		for _, e := range batch {
			if idSet[e.P2] {
				kept = append(kept, e)
			}
		}
		mergeMaxScore(acc, kept)
	}
	return collectEdges(acc), nil
}

// ListEdgesAdjacent returns every edge of the variant with score >= minScore
// and at least one endpoint in seeds. Edges are stored once per canonical
// pair, so each window is queried twice, anchored on p1 and on p2, and the
// union deduplicated by canonical pair keeping the maximum score.
func (s *Store) ListEdgesAdjacent(ctx context.Context, seeds []string, minScore int, variant Variant) ([]*Edge, error) {
	if len(seeds) == 0 {
		return []*Edge{}, nil
	}

	acc := make(map[edgeKey]int)
	for _, window := range windows(seeds, s.batchWindow()) {
		batch, err := s.driver.ListEdges(ctx, &FindEdge{
			Variant:  variant,
			MinScore: minScore,
			P1In:     window,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list adjacent edges by p1")
		}
		mergeMaxScore(acc, batch)

		batch, err = s.driver.ListEdges(ctx, &FindEdge{
			Variant:  variant,
			MinScore: minScore,
			P2In:     window,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list adjacent edges by p2")
		}
		mergeMaxScore(acc, batch)
	}
	return collectEdges(acc), nil
}
