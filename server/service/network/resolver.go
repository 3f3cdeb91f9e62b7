// Package network resolves heterogeneous protein identifiers against the
// interaction store and assembles size-bounded subgraphs around them.
package network

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/bionetlab/stringviz/store"
)

// Status is the outcome of resolving one input query.
type Status string

const (
	StatusResolved   Status = "resolved"
	StatusAmbiguous  Status = "ambiguous"
	StatusUnresolved Status = "unresolved"
)

// SourceDirect marks a hit on the proteins primary key rather than an alias.
const SourceDirect = "direct"

// maxCandidates bounds the candidate list reported for ambiguous queries.
const maxCandidates = 10

// defaultAliasLimit is a safety ceiling on alias rows fetched per query.
const defaultAliasLimit = 50

// DefaultSourcePriority orders the identifier authorities used to pick the
// best candidate for an ambiguous alias. Earlier entries win; sources not in
// the list sort after all listed ones.
var DefaultSourcePriority = []string{
	"Ensembl",
	"Ensembl_HGNC",
	"Ensembl_EntrezGene",
	"HGNC",
	"UniProt",
	"Gene_Name",
	"BLAST_UniProt",
	"RefSeq",
	"EntrezGene",
	"BioMart_HUGO",
}

// Candidate is one possible target of an ambiguous query.
type Candidate struct {
	ProteinID string `json:"proteinId"`
	Source    string `json:"source"`
}

// ResolvedIdentifier is the per-query resolution result. One is produced for
// every non-empty trimmed input query, in input order.
type ResolvedIdentifier struct {
	Query         string      `json:"query"`
	Status        Status      `json:"status"`
	ProteinID     string      `json:"proteinId,omitempty"`
	PreferredName string      `json:"preferredName,omitempty"`
	Source        string      `json:"source,omitempty"`
	Candidates    []Candidate `json:"candidates,omitempty"`
}

// CandidateDisplay renders the candidate list as "id(source)" pairs for
// tabular display.
func (r *ResolvedIdentifier) CandidateDisplay() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		parts = append(parts, c.ProteinID+"("+c.Source+")")
	}
	return strings.Join(parts, "; ")
}

// Resolver maps free-text queries to canonical protein identifiers. The
// source priority is injected so the ranking stays a configuration concern.
type Resolver struct {
	store      *store.Store
	rank       map[string]int
	aliasLimit int
}

// ResolverOption tunes a Resolver.
type ResolverOption func(*Resolver)

// WithSourcePriority replaces the default authority ordering.
func WithSourcePriority(priority []string) ResolverOption {
	return func(r *Resolver) {
		r.rank = buildRank(priority)
	}
}

// WithAliasLimit replaces the alias row ceiling.
func WithAliasLimit(limit int) ResolverOption {
	return func(r *Resolver) {
		if limit > 0 {
			r.aliasLimit = limit
		}
	}
}

// NewResolver creates a Resolver backed by s.
func NewResolver(s *store.Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:      s,
		rank:       buildRank(DefaultSourcePriority),
		aliasLimit: defaultAliasLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func buildRank(priority []string) map[string]int {
	rank := make(map[string]int, len(priority))
	for i, source := range priority {
		rank[source] = i
	}
	return rank
}

// sourceRank orders candidate sources: listed authorities first by position,
// then unlisted ones, then rows with no source at all.
func (r *Resolver) sourceRank(source string) int {
	if source == "" {
		return len(r.rank) + 2
	}
	if rank, ok := r.rank[source]; ok {
		return rank
	}
	return len(r.rank) + 1
}

// Resolve maps queries to canonical identifiers. Output order matches the
// trimmed, non-empty input order; empty queries are skipped entirely.
// A direct primary-key hit always wins, even when the same string would also
// match aliases of a different protein.
func (r *Resolver) Resolve(ctx context.Context, queries []string, taxonID *string) ([]*ResolvedIdentifier, error) {
	out := make([]*ResolvedIdentifier, 0, len(queries))

	for _, raw := range queries {
		query := strings.TrimSpace(raw)
		if query == "" {
			continue
		}

		resolved, err := r.resolveOne(ctx, query, taxonID)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (r *Resolver) resolveOne(ctx context.Context, query string, taxonID *string) (*ResolvedIdentifier, error) {
	// Direct primary-key match.
	protein, err := r.store.GetProtein(ctx, &store.FindProtein{ID: &query})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up protein %q", query)
	}
	if protein != nil {
		return &ResolvedIdentifier{
			Query:         query,
			Status:        StatusResolved,
			ProteinID:     protein.ID,
			PreferredName: protein.PreferredName,
			Source:        SourceDirect,
		}, nil
	}

	// Alias match, case-insensitive, optionally narrowed by taxon.
	limit := r.aliasLimit
	find := &store.FindAlias{Alias: &query, Limit: &limit}
	if taxonID != nil && *taxonID != "" {
		find.TaxonID = taxonID
	}
	aliases, err := r.store.ListAliases(ctx, find)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up aliases for %q", query)
	}

	switch len(aliases) {
	case 0:
		return &ResolvedIdentifier{
			Query:  query,
			Status: StatusUnresolved,
		}, nil
	case 1:
		alias := aliases[0]
		return &ResolvedIdentifier{
			Query:         query,
			Status:        StatusResolved,
			ProteinID:     alias.ProteinID,
			PreferredName: alias.PreferredName,
			Source:        alias.Source,
		}, nil
	}

	// Ambiguous: order candidates by source authority, ties by ascending id.
	sort.SliceStable(aliases, func(i, j int) bool {
		ri, rj := r.sourceRank(aliases[i].Source), r.sourceRank(aliases[j].Source)
		if ri != rj {
			return ri < rj
		}
		return aliases[i].ProteinID < aliases[j].ProteinID
	})

	best := aliases[0]
	candidates := make([]Candidate, 0, maxCandidates)
	for _, alias := range aliases {
		candidates = append(candidates, Candidate{ProteinID: alias.ProteinID, Source: alias.Source})
		if len(candidates) == maxCandidates {
			break
		}
	}

	return &ResolvedIdentifier{
		Query:         query,
		Status:        StatusAmbiguous,
		ProteinID:     best.ProteinID,
		PreferredName: best.PreferredName,
		Source:        best.Source,
		Candidates:    candidates,
	}, nil
}

// SeedIDs extracts the canonical seed identifiers from resolution results:
// resolved and ambiguous rows contribute their best id, deduplicated with
// first-occurrence order preserved.
func SeedIDs(resolved []*ResolvedIdentifier) []string {
	seen := make(map[string]bool, len(resolved))
	seeds := make([]string, 0, len(resolved))
	for _, r := range resolved {
		if r.ProteinID == "" {
			continue
		}
		if r.Status != StatusResolved && r.Status != StatusAmbiguous {
			continue
		}
		if seen[r.ProteinID] {
			continue
		}
		seen[r.ProteinID] = true
		seeds = append(seeds, r.ProteinID)
	}
	return seeds
}
