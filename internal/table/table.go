package table

import "slices"

// Row is a single record: column name -> raw scalar value.
// Values are carried as strings (CSV-style); typed interpretation happens
// through the coercion helpers in this package.
type Row map[string]string

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Get returns the value for col, or "" when the column is absent.
func (r Row) Get(col string) string {
	return r[col]
}

// Table is an ordered relation: a fixed column order plus rows in
// insertion order. Insertion order is significant - uniqueness tie-breaks
// and loyalty-tier tie-breaks both depend on it.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns)}
}

// Append adds rows at the end, preserving submission order.
func (t *Table) Append(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether col is part of the declared column order.
func (t *Table) HasColumn(col string) bool {
	return slices.Contains(t.Columns, col)
}

// EnsureColumns appends any missing columns to the declared order.
// Rows are untouched; absent values read as "".
func (t *Table) EnsureColumns(cols ...string) {
	for _, c := range cols {
		if !slices.Contains(t.Columns, c) {
			t.Columns = append(t.Columns, c)
		}
	}
}

// KeySet collects the distinct values of one column across all rows.
// Used for uniqueness and foreign-key lookups against reference tables.
func (t *Table) KeySet(col string) map[string]struct{} {
	set := make(map[string]struct{})
	if t == nil {
		return set
	}
	for _, r := range t.Rows {
		set[r.Get(col)] = struct{}{}
	}
	return set
}

// Index builds a first-wins lookup from one column's value to its row.
func (t *Table) Index(col string) map[string]Row {
	idx := make(map[string]Row)
	if t == nil {
		return idx
	}
	for _, r := range t.Rows {
		key := r.Get(col)
		if _, seen := idx[key]; !seen {
			idx[key] = r
		}
	}
	return idx
}
