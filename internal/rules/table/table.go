// Package table implements the columnar relation the runtime evaluates
// rules against (spec §3 "Table model"). Re-architecture guidance (spec §9)
// calls for a typed array with a null bitmap rather than a dynamically
// typed cell; this package keeps every cell as its original string
// representation (the "opaque string column for values that failed
// coercion") alongside a null bitmap, and lets condition operators attempt
// their own best-effort numeric/date coercion per cell. Row identity is the
// cell's ordinal index within the column; column identity is by name.
package table

import "fmt"

// Column is one named column: a slice of raw string values plus a parallel
// null bitmap. A cell is null when Null[i] is true; Values[i] is the raw
// source text otherwise (never meaningfully populated when null).
type Column struct {
	Name   string
	Values []string
	Null   []bool
}

// Len returns the column's row count.
func (c *Column) Len() int { return len(c.Values) }

// At returns the raw value and whether it is present (non-null) at row i.
func (c *Column) At(i int) (string, bool) {
	if i < 0 || i >= len(c.Values) {
		return "", false
	}
	return c.Values[i], !c.Null[i]
}

// Table is an immutable columnar relation: named columns sharing a common
// row count. No row mutation is exposed; transforms are produced as
// RuleTransformation records and a new Table is built to materialize them
// (spec §3's "applying [transforms] to produce a derived table is a
// runtime concern").
type Table struct {
	columns  map[string]*Column
	rowCount int
}

// New constructs a Table from a set of columns, which must all share the
// same length. Returns an error rather than panicking, since malformed
// input tables are a caller bug the compiler/runtime boundary must surface
// cleanly (spec §6 "throws only for programmer errors").
func New(columns []*Column) (*Table, error) {
	t := &Table{columns: make(map[string]*Column, len(columns))}
	for i, col := range columns {
		if i == 0 {
			t.rowCount = col.Len()
		} else if col.Len() != t.rowCount {
			return nil, fmt.Errorf("table: column %q has %d rows, expected %d", col.Name, col.Len(), t.rowCount)
		}
		t.columns[col.Name] = col
	}
	return t, nil
}

// Empty returns a zero-row, zero-column table.
func Empty() *Table {
	return &Table{columns: map[string]*Column{}}
}

// RowCount returns the table's row count.
func (t *Table) RowCount() int { return t.rowCount }

// Column returns the named column and whether it exists.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.columns[name]
	return c, ok
}

// HasColumn reports whether name is a known column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// ColumnNames returns the table's column names in no particular order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.columns))
	for name := range t.columns {
		names = append(names, name)
	}
	return names
}

// WithColumn returns a new Table identical to t except that name is
// replaced (or added) with col. t is never mutated — this is how the
// runtime materializes the transformation phase's working table (spec
// §4.3 top-level control flow).
func (t *Table) WithColumn(col *Column) *Table {
	next := &Table{columns: make(map[string]*Column, len(t.columns)+1), rowCount: t.rowCount}
	for name, c := range t.columns {
		next.columns[name] = c
	}
	if col.Len() > next.rowCount {
		next.rowCount = col.Len()
	}
	next.columns[col.Name] = col
	return next
}
