package registry

import "github.com/dangdinh/giapha/pkg/types"

// Sanitize returns a new row containing only the entries of raw whose key is
// in the table's column allowlist. Matching is exact string comparison: no
// case folding, trimming, or prefix logic, so keys shaped like SQL fragments
// or prototype property names simply fail the lookup. An unregistered table
// yields an empty row; callers skip empty rows rather than writing them.
func Sanitize(table string, raw types.Row) types.Row {
	clean := make(types.Row, len(raw))
	allowed, ok := Columns(table)
	if !ok {
		return clean
	}
	for k, v := range raw {
		if _, ok := allowed[k]; ok {
			clean[k] = v
		}
	}
	return clean
}
