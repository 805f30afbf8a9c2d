// pkg/clean/normalize.go
package clean

import (
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// nullSentinel is the literal placeholder the upstream sources use for
// an absent value.
const nullSentinel = "NULL"

// ReplaceSentinel turns every string cell equal to sentinel into a true
// null across all columns.
func ReplaceSentinel(ds *dataset.Dataset, sentinel string) {
	for _, col := range ds.Columns() {
		// Columns are snapshotted above, so the closure never sees a
		// missing column.
		_ = ds.MapColumn(col, func(v dataset.Value) dataset.Value {
			if !v.IsNull() && v.Kind() == dataset.KindString && v.Str() == sentinel {
				return dataset.Null()
			}
			return v
		})
	}
}

// Normalize collapses "NULL" sentinels to nulls, removes exact
// duplicate rows keeping the first occurrence, drops every row that
// still contains a null, and promotes a column literally named "index"
// to be the row key. The order matters: duplicates are removed before
// null rows, so two rows differing only by a null cell are never
// deduplicated against each other.
func Normalize(ds *dataset.Dataset) error {
	ReplaceSentinel(ds, nullSentinel)
	ds.DropDuplicates()
	ds.DropNullRows()
	if ds.HasColumn("index") {
		return ds.SetKey("index")
	}
	return nil
}
