package table

// BoolColumn is a dense column-shaped boolean mask: the result of
// evaluating one condition node against an entire column or table (spec
// §4.3.2). It has no null bitmap of its own — every evaluator resolves
// nulls to a definite true/false per operator's documented semantics (e.g.
// `empty` treats null as true, `matches` treats null as false).
type BoolColumn struct {
	Values []bool
}

// NewBoolColumn allocates a mask of length n, all false.
func NewBoolColumn(n int) *BoolColumn {
	return &BoolColumn{Values: make([]bool, n)}
}

// And combines two masks elementwise. Panics if lengths differ — a
// compiler or runtime bug, never a user-data condition (masks are always
// derived from the same table).
func (b *BoolColumn) And(other *BoolColumn) *BoolColumn {
	out := NewBoolColumn(len(b.Values))
	for i := range b.Values {
		out.Values[i] = b.Values[i] && other.Values[i]
	}
	return out
}

// Or combines two masks elementwise.
func (b *BoolColumn) Or(other *BoolColumn) *BoolColumn {
	out := NewBoolColumn(len(b.Values))
	for i := range b.Values {
		out.Values[i] = b.Values[i] || other.Values[i]
	}
	return out
}

// Not negates a mask elementwise.
func (b *BoolColumn) Not() *BoolColumn {
	out := NewBoolColumn(len(b.Values))
	for i := range b.Values {
		out.Values[i] = !b.Values[i]
	}
	return out
}

// TrueIndices returns the row indices where the mask is true, in order.
func (b *BoolColumn) TrueIndices() []int {
	var out []int
	for i, v := range b.Values {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// FalseIndices returns the row indices where the mask is false, in order.
func (b *BoolColumn) FalseIndices() []int {
	var out []int
	for i, v := range b.Values {
		if !v {
			out = append(out, i)
		}
	}
	return out
}
