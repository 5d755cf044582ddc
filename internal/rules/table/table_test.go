package table

import "testing"

func TestFromColumns_RowCount(t *testing.T) {
	tbl, err := FromColumns(map[string][]string{
		"title": {"A", ""},
		"price": {"10", "-5"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.RowCount() != 2 {
		t.Errorf("expected 2 rows, got %d", tbl.RowCount())
	}
}

func TestNew_MismatchedLengthsRejected(t *testing.T) {
	_, err := New([]*Column{
		NewColumn("a", []string{"1", "2"}, nil),
		NewColumn("b", []string{"1"}, nil),
	})
	if err == nil {
		t.Fatal("expected error for mismatched column lengths")
	}
}

func TestWithColumn_DoesNotMutateOriginal(t *testing.T) {
	tbl, _ := FromColumns(map[string][]string{"a": {"1", "2"}})
	updated := tbl.WithColumn(NewColumn("a", []string{"9", "9"}, nil))

	orig, _ := tbl.Column("a")
	if orig.Values[0] != "1" {
		t.Errorf("original table was mutated: %v", orig.Values)
	}
	next, _ := updated.Column("a")
	if next.Values[0] != "9" {
		t.Errorf("expected updated table to see new value, got %v", next.Values)
	}
}

func TestBuilder_MissingColumnIsNull(t *testing.T) {
	b := NewBuilder()
	b.AddRow(map[string]string{"title": "A", "price": "10"})
	b.AddRow(map[string]string{"title": "B"})
	tbl, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	price, _ := tbl.Column("price")
	if _, ok := price.At(1); ok {
		t.Errorf("expected row 1 price to be null")
	}
}

func TestEmpty_ZeroRowsZeroColumns(t *testing.T) {
	tbl := Empty()
	if tbl.RowCount() != 0 {
		t.Errorf("expected 0 rows")
	}
}

func TestBoolColumn_AndOrNot(t *testing.T) {
	a := &BoolColumn{Values: []bool{true, false, true}}
	b := &BoolColumn{Values: []bool{true, true, false}}

	and := a.And(b)
	if !(and.Values[0] && !and.Values[1] && !and.Values[2]) {
		t.Errorf("unexpected And result: %v", and.Values)
	}
	or := a.Or(b)
	if !(or.Values[0] && or.Values[1] && or.Values[2]) {
		t.Errorf("unexpected Or result: %v", or.Values)
	}
	not := a.Not()
	if not.Values[0] || !not.Values[1] || not.Values[2] {
		t.Errorf("unexpected Not result: %v", not.Values)
	}
}
