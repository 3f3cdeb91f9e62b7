package sqlite

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bionetlab/stringviz/store"
)

func (d *DB) ListEdges(ctx context.Context, find *store.FindEdge) ([]*store.Edge, error) {
	table, err := find.Variant.Table()
	if err != nil {
		return nil, err
	}

	where, args := []string{"score_int >= " + placeholder(1)}, []any{find.MinScore}

	switch {
	case len(find.P1In) > 0:
		where = append(where, "p1 IN ("+placeholders(len(find.P1In))+")")
		for _, id := range find.P1In {
			args = append(args, id)
		}
	case len(find.P2In) > 0:
		where = append(where, "p2 IN ("+placeholders(len(find.P2In))+")")
		for _, id := range find.P2In {
			args = append(args, id)
		}
	default:
		return nil, errors.New("either P1In or P2In is required")
	}

	// Table names come from the Variant mapping, never from request input.
	query := `SELECT p1, p2, score_int FROM ` + table + ` WHERE ` + where[0] + ` AND ` + where[1]

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query edges from %s", table)
	}
	defer rows.Close()

	list := make([]*store.Edge, 0)
	for rows.Next() {
		edge := &store.Edge{}
		if err := rows.Scan(&edge.P1, &edge.P2, &edge.Score); err != nil {
			return nil, errors.Wrap(err, "failed to scan edge")
		}
		list = append(list, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate edges")
	}
	return list, nil
}
