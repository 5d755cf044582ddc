package table

import "fmt"

// Builder accumulates rows (as map[string]string records) and produces a
// Table. cmd/rulesctl's CSV loader feeds it one record per CSV row.
type Builder struct {
	columnOrder []string
	rows        []map[string]string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddRow appends one record. Column order is first-seen order across all
// AddRow calls; a row missing a previously seen column is treated as null
// for that column.
func (b *Builder) AddRow(row map[string]string) {
	for k := range row {
		if !contains(b.columnOrder, k) {
			b.columnOrder = append(b.columnOrder, k)
		}
	}
	b.rows = append(b.rows, row)
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Build constructs the Table. Returns an error only if the builder's
// internal invariant (all rows same column set length after padding) is
// somehow violated, which should not happen via AddRow.
func (b *Builder) Build() (*Table, error) {
	n := len(b.rows)
	columns := make([]*Column, 0, len(b.columnOrder))
	for _, name := range b.columnOrder {
		values := make([]string, n)
		null := make([]bool, n)
		for i, row := range b.rows {
			v, ok := row[name]
			values[i] = v
			null[i] = !ok
		}
		columns = append(columns, &Column{Name: name, Values: values, Null: null})
	}
	t, err := New(columns)
	if err != nil {
		return nil, fmt.Errorf("table: build failed: %w", err)
	}
	return t, nil
}

// FromRecords is a convenience constructor for in-memory test tables and
// the HTTP shim's /execute rows: a slice of records, in document order, each a
// column-name -> raw-value map. A column name absent from a given record is
// null for that row.
func FromRecords(records []map[string]string) (*Table, error) {
	b := NewBuilder()
	for _, r := range records {
		b.AddRow(r)
	}
	return b.Build()
}

// FromColumns is a convenience constructor for tests that already have
// column-major data: name -> values, where an empty string element is
// treated as present-but-empty, not null. Use NewColumn for explicit
// null control.
func FromColumns(cols map[string][]string) (*Table, error) {
	columns := make([]*Column, 0, len(cols))
	for name, values := range cols {
		null := make([]bool, len(values))
		columns = append(columns, &Column{Name: name, Values: values, Null: null})
	}
	return New(columns)
}

// NewColumn builds a Column from values with an explicit null mask aligned
// by index; a nil mask means no nulls.
func NewColumn(name string, values []string, null []bool) *Column {
	if null == nil {
		null = make([]bool, len(values))
	}
	return &Column{Name: name, Values: values, Null: null}
}
