package network

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Format is a delimited-text export format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatTSV Format = "tsv"
)

// Delimiter returns the field separator for the format.
func (f Format) Delimiter() (rune, error) {
	switch f {
	case FormatCSV:
		return ',', nil
	case FormatTSV:
		return '\t', nil
	default:
		return 0, errors.Errorf("unknown export format %q", string(f))
	}
}

// WriteNodeTable serializes node rows as delimited text with a header line.
func WriteNodeTable(w io.Writer, rows []NodeRow, format Format) error {
	delimiter, err := format.Delimiter()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	if err := cw.Write([]string{"protein_id", "preferred_name", "degree"}); err != nil {
		return errors.Wrap(err, "failed to write node table header")
	}
	for _, row := range rows {
		record := []string{row.ProteinID, row.PreferredName, strconv.Itoa(row.Degree)}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "failed to write node row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush node table")
}

// WriteEdgeTable serializes edge rows as delimited text with a header line.
// The float score is written with three decimals, the resolution of the
// stored integer confidence.
func WriteEdgeTable(w io.Writer, rows []EdgeRow, format Format) error {
	delimiter, err := format.Delimiter()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	if err := cw.Write([]string{"p1", "p2", "score_int", "score"}); err != nil {
		return errors.Wrap(err, "failed to write edge table header")
	}
	for _, row := range rows {
		record := []string{
			row.P1,
			row.P2,
			strconv.Itoa(row.ScoreInt),
			strconv.FormatFloat(row.Score, 'f', 3, 64),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "failed to write edge row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush edge table")
}
