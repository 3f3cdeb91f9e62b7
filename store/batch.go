package store

// defaultBatchWindow bounds the number of identifiers placed into a single
// IN-list. SQLite historically limits bound variables to 999 per statement;
// 900 leaves headroom for the other predicates in the query.
const defaultBatchWindow = 900

// windows partitions ids into consecutive slices of at most size elements.
// Order within and across windows follows the input order.
func windows(ids []string, size int) [][]string {
	if size <= 0 {
		size = defaultBatchWindow
	}
	if len(ids) == 0 {
		return nil
	}
	out := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
