package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/bionetlab/stringviz/store"
)

func (d *DB) GetProtein(ctx context.Context, find *store.FindProtein) (*store.Protein, error) {
	if find.ID == nil {
		return nil, errors.New("find.ID is required")
	}

	protein := &store.Protein{}
	var preferredName, annotation sql.NullString
	err := d.db.QueryRowContext(ctx, `
		SELECT protein_id, preferred_name, annotation
		FROM proteins
		WHERE protein_id = `+placeholder(1),
		*find.ID,
	).Scan(&protein.ID, &preferredName, &annotation)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get protein")
	}
	protein.PreferredName = preferredName.String
	protein.Annotation = annotation.String
	return protein, nil
}

func (d *DB) ListProteins(ctx context.Context, find *store.FindProtein) ([]*store.Protein, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "protein_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.IDs; len(v) > 0 {
		inArgs := make([]any, 0, len(v))
		for _, id := range v {
			inArgs = append(inArgs, id)
		}
		where, args = append(where, "protein_id IN ("+placeholders(len(v))+")"), append(args, inArgs...)
	}

	query := `
		SELECT protein_id, preferred_name, annotation
		FROM proteins
		WHERE ` + strings.Join(where, " AND ")

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query proteins")
	}
	defer rows.Close()

	list := make([]*store.Protein, 0)
	for rows.Next() {
		protein := &store.Protein{}
		var preferredName, annotation sql.NullString
		if err := rows.Scan(&protein.ID, &preferredName, &annotation); err != nil {
			return nil, errors.Wrap(err, "failed to scan protein")
		}
		protein.PreferredName = preferredName.String
		protein.Annotation = annotation.String
		list = append(list, protein)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate proteins")
	}
	return list, nil
}
