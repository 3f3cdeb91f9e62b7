package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/bionetlab/stringviz/store"
)

func (d *DB) ListAliases(ctx context.Context, find *store.FindAlias) ([]*store.Alias, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.Alias; v != nil {
		// The aliases.alias column carries COLLATE NOCASE in the shipped
		// schema; stating it in the predicate keeps the lookup
		// case-insensitive even against a database built without it.
		where, args = append(where, "a.alias = "+placeholder(len(args)+1)+" COLLATE NOCASE"), append(args, *v)
	}
	if v := find.TaxonID; v != nil {
		where, args = append(where, "a.taxon_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT a.alias, a.protein_id, a.source, a.taxon_id, p.preferred_name
		FROM aliases a
		LEFT JOIN proteins p ON a.protein_id = p.protein_id
		WHERE ` + strings.Join(where, " AND ")

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query aliases")
	}
	defer rows.Close()

	list := make([]*store.Alias, 0)
	for rows.Next() {
		alias := &store.Alias{}
		var source, taxonID, preferredName sql.NullString
		if err := rows.Scan(&alias.Alias, &alias.ProteinID, &source, &taxonID, &preferredName); err != nil {
			return nil, errors.Wrap(err, "failed to scan alias")
		}
		alias.Source = source.String
		alias.TaxonID = taxonID.String
		alias.PreferredName = preferredName.String
		list = append(list, alias)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate aliases")
	}
	return list, nil
}
