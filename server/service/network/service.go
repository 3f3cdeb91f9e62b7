package network

import (
	"github.com/bionetlab/stringviz/store"
)

// Service composes identifier resolution, subgraph construction, and
// attribute lookup into the graph-building operations the API layer exposes.
// Each call is synchronous and reads the store fresh; no state is shared
// across requests.
type Service struct {
	store    *store.Store
	resolver *Resolver
}

// NewService creates a network service on top of s.
func NewService(s *store.Store, resolverOpts ...ResolverOption) *Service {
	return &Service{
		store:    s,
		resolver: NewResolver(s, resolverOpts...),
	}
}

// Resolver returns the identifier resolver.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}
