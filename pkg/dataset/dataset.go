// pkg/dataset/dataset.go
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn indicates a required column is absent from a dataset.
// This is a structural error: the batch for that entity cannot proceed.
var ErrMissingColumn = errors.New("column not found")

// Dataset is an in-memory tabular dataset: ordered named columns and
// column-aligned rows of typed cells. One dataset is owned by a single
// pipeline run and is mutated in place by the cleaning steps.
type Dataset struct {
	columns []string
	rows    [][]Value
	key     string
}

// New creates an empty dataset with the given column order.
func New(columns ...string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{columns: cols}
}

// Columns returns the column names in order, including the promoted
// key column if any.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Key returns the promoted key column name, or "" if none.
func (d *Dataset) Key() string {
	return d.key
}

// HasColumn reports whether a column exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.colIndex(name) >= 0
}

func (d *Dataset) colIndex(name string) int {
	for i, col := range d.columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Require returns ErrMissingColumn naming the first absent column.
func (d *Dataset) Require(columns ...string) error {
	for _, col := range columns {
		if !d.HasColumn(col) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return nil
}

// AppendRow adds a row. The cell count must match the column count.
func (d *Dataset) AppendRow(cells ...Value) error {
	if len(cells) != len(d.columns) {
		return fmt.Errorf("row has %d cells, dataset has %d columns", len(cells), len(d.columns))
	}
	row := make([]Value, len(cells))
	copy(row, cells)
	d.rows = append(d.rows, row)
	return nil
}

// AppendRowMap adds a row from a column-name mapping. Columns absent
// from the mapping become null cells; extra keys are ignored.
func (d *Dataset) AppendRowMap(cells map[string]Value) {
	row := make([]Value, len(d.columns))
	for i, col := range d.columns {
		if v, ok := cells[col]; ok {
			row[i] = v
		} else {
			row[i] = Null()
		}
	}
	d.rows = append(d.rows, row)
}

// Get returns the cell at the given row index and column.
// A missing column reads as null.
func (d *Dataset) Get(row int, col string) Value {
	i := d.colIndex(col)
	if i < 0 || row < 0 || row >= len(d.rows) {
		return Null()
	}
	return d.rows[row][i]
}

// Set overwrites the cell at the given row index and column.
func (d *Dataset) Set(row int, col string, v Value) {
	i := d.colIndex(col)
	if i < 0 || row < 0 || row >= len(d.rows) {
		return
	}
	d.rows[row][i] = v
}

// Row is a read view over one dataset row.
type Row struct {
	d   *Dataset
	idx int
}

// Get returns the named cell of the row.
func (r Row) Get(col string) Value {
	return r.d.Get(r.idx, col)
}

// Row returns a view over row i.
func (d *Dataset) Row(i int) Row {
	return Row{d: d, idx: i}
}

// DropColumn removes a column and its cells. Reports whether the column
// was present; dropping an absent column is not an error.
func (d *Dataset) DropColumn(name string) bool {
	i := d.colIndex(name)
	if i < 0 {
		return false
	}
	d.columns = append(d.columns[:i], d.columns[i+1:]...)
	for r := range d.rows {
		d.rows[r] = append(d.rows[r][:i], d.rows[r][i+1:]...)
	}
	return true
}

// RenameColumn renames a column in place. Reports whether the old name
// was present.
func (d *Dataset) RenameColumn(old, new string) bool {
	i := d.colIndex(old)
	if i < 0 {
		return false
	}
	d.columns[i] = new
	return true
}

// MapColumn rewrites every cell of a column through fn.
func (d *Dataset) MapColumn(col string, fn func(Value) Value) error {
	i := d.colIndex(col)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, col)
	}
	for r := range d.rows {
		d.rows[r][i] = fn(d.rows[r][i])
	}
	return nil
}

// Filter keeps only the rows for which keep returns true, preserving
// row order.
func (d *Dataset) Filter(keep func(Row) bool) {
	kept := d.rows[:0]
	for i := range d.rows {
		if keep(Row{d: d, idx: i}) {
			kept = append(kept, d.rows[i])
		}
	}
	d.rows = kept
}

// DropDuplicates removes rows that are exact duplicates of an earlier
// row, keeping the first occurrence.
func (d *Dataset) DropDuplicates() {
	seen := make(map[string]struct{}, len(d.rows))
	kept := d.rows[:0]
	for _, row := range d.rows {
		k := rowFingerprint(row)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, row)
	}
	d.rows = kept
}

// rowFingerprint builds a deterministic key for duplicate detection.
// Nullness and kind participate so a null cell never collides with an
// empty string.
func rowFingerprint(row []Value) string {
	var sb strings.Builder
	for _, v := range row {
		if v.IsNull() {
			sb.WriteString("\x00n")
		} else {
			fmt.Fprintf(&sb, "\x00%d:%s", int(v.Kind()), v.Str())
		}
	}
	return sb.String()
}

// DropNullRows removes every row containing a null in any column.
func (d *Dataset) DropNullRows() {
	kept := d.rows[:0]
	for _, row := range d.rows {
		hasNull := false
		for _, v := range row {
			if v.IsNull() {
				hasNull = true
				break
			}
		}
		if !hasNull {
			kept = append(kept, row)
		}
	}
	d.rows = kept
}

// SetKey promotes a column to be the dataset's row identifier. The
// column stays in place; the loader turns it into the primary key
// instead of an ordinary data column.
func (d *Dataset) SetKey(col string) error {
	if d.colIndex(col) < 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, col)
	}
	d.key = col
	return nil
}

// KeyValue returns the key cell for row i, or null if no key is set.
func (d *Dataset) KeyValue(i int) Value {
	if d.key == "" {
		return Null()
	}
	return d.Get(i, d.key)
}

// DataColumns returns the column names excluding the promoted key.
func (d *Dataset) DataColumns() []string {
	cols := make([]string, 0, len(d.columns))
	for _, col := range d.columns {
		if col == d.key {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

// ColumnKind inspects a column and returns the kind of its first
// non-null cell, defaulting to string for empty or all-null columns.
func (d *Dataset) ColumnKind(col string) Kind {
	i := d.colIndex(col)
	if i < 0 {
		return KindString
	}
	for r := range d.rows {
		if !d.rows[r][i].IsNull() {
			return d.rows[r][i].Kind()
		}
	}
	return KindString
}
