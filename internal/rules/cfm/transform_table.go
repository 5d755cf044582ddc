package cfm

import "rules.evalgo.org/internal/rules/table"

// ApplyMapping renames source columns to their canonical names per mapping
// (source column name -> canonical field name) and returns a new table
// containing only the columns that have a canonical destination, normalized
// per the model. Columns absent from mapping are dropped — callers that
// want to keep passthrough columns should union the result with the
// original table themselves.
func (m *Model) ApplyMapping(src *table.Table, mapping map[string]string) (*table.Table, error) {
	out := table.Empty()
	for sourceCol, canonical := range mapping {
		col, ok := src.Column(sourceCol)
		if !ok {
			continue
		}
		values := make([]string, col.Len())
		null := make([]bool, col.Len())
		spec, known := m.Fields[canonical]
		for i := 0; i < col.Len(); i++ {
			v, present := col.At(i)
			if !present {
				null[i] = true
				continue
			}
			if known {
				v = normalizeValue(spec, v)
			}
			values[i] = v
		}
		out = out.WithColumn(table.NewColumn(canonical, values, null))
	}
	return out, nil
}

// RowAt extracts row i of tbl as a field-name -> value map restricted to
// declared canonical fields, suitable for Validate.
func (m *Model) RowAt(tbl *table.Table, i int) map[string]string {
	row := make(map[string]string, len(m.FieldOrder))
	for _, name := range m.FieldOrder {
		col, ok := tbl.Column(name)
		if !ok {
			continue
		}
		if v, present := col.At(i); present {
			row[name] = v
		}
	}
	return row
}
