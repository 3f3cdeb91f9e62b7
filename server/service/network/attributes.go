package network

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bionetlab/stringviz/store"
)

// GetAttributes resolves a display name per node id. Ids with no protein
// record, or a record with an empty preferred name, fall back to the id
// itself; absence is expected here and never an error.
func (s *Service) GetAttributes(ctx context.Context, ids []string) (map[string]string, error) {
	attrs := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return attrs, nil
	}

	proteins, err := s.store.ListProteins(ctx, &store.FindProtein{IDs: ids})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch node attributes")
	}
	for _, p := range proteins {
		name := p.PreferredName
		if name == "" {
			name = p.ID
		}
		attrs[p.ID] = name
	}
	for _, id := range ids {
		if _, ok := attrs[id]; !ok {
			attrs[id] = id
		}
	}
	return attrs, nil
}
