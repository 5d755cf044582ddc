package runtime

import (
	"regexp"
	"testing"

	"rules.evalgo.org/internal/rules/ir"
	"rules.evalgo.org/internal/rules/table"
)

func buildTable(t *testing.T, cols map[string][]string) *table.Table {
	t.Helper()
	tbl, err := table.FromColumns(cols)
	if err != nil {
		t.Fatalf("unexpected error building table: %v", err)
	}
	return tbl
}

func TestEvalSimple_EmptyTreatsNullAsMatch(t *testing.T) {
	cond := &ir.CompiledCondition{Kind: ir.KindSimple, Operator: ir.OpEmpty}
	if !evalSimple(cond, "", false) {
		t.Error("expected empty operator to match a null cell")
	}
	if evalSimple(cond, "value", true) {
		t.Error("expected empty operator to not match a populated cell")
	}
}

func TestEvalSimple_ContainsCaseInsensitiveByDefault(t *testing.T) {
	cond := &ir.CompiledCondition{Kind: ir.KindSimple, Operator: ir.OpContains, Value: "WIDGET"}
	if !evalSimple(cond, "a blue widget", true) {
		t.Error("expected case-insensitive contains match")
	}
}

func TestEvalSimple_GtNumericComparison(t *testing.T) {
	cond := &ir.CompiledCondition{Kind: ir.KindSimple, Operator: ir.OpGt, Value: "10"}
	if !evalSimple(cond, "15", true) {
		t.Error("expected 15 > 10 to match")
	}
	if evalSimple(cond, "5", true) {
		t.Error("expected 5 > 10 to not match")
	}
}

func TestEvalSimple_InUsesSet(t *testing.T) {
	cond := &ir.CompiledCondition{
		Kind: ir.KindSimple, Operator: ir.OpIn,
		Set: map[string]bool{"red": true, "blue": true},
	}
	if !evalSimple(cond, "red", true) {
		t.Error("expected red to be in the set")
	}
	if evalSimple(cond, "green", true) {
		t.Error("expected green to not be in the set")
	}
}

func TestEvaluateVectorized_MatchesRowWise(t *testing.T) {
	tbl := buildTable(t, map[string][]string{"price": {"5", "15", "25"}})
	cond := &ir.CompiledCondition{Kind: ir.KindSimple, Operator: ir.OpGt, Value: "10", Field: "price"}

	mask, ok := evaluateVectorized(cond, tbl, "price")
	if !ok {
		t.Fatal("expected vectorized evaluation to succeed")
	}
	want := []bool{false, true, true}
	for i, v := range want {
		if mask.Values[i] != v {
			t.Errorf("row %d: expected %v, got %v", i, v, mask.Values[i])
		}
		if got := evaluateRow(cond, tbl, "price", i); got != v {
			t.Errorf("row-wise evaluation diverged at row %d: expected %v, got %v", i, v, got)
		}
	}
}

func TestEvaluateVectorized_AndCombinator(t *testing.T) {
	tbl := buildTable(t, map[string][]string{"price": {"5", "15"}, "stock": {"0", "3"}})
	cond := &ir.CompiledCondition{
		Kind: ir.KindAnd,
		And: []*ir.CompiledCondition{
			{Kind: ir.KindSimple, Operator: ir.OpGt, Value: "10", Field: "price"},
			{Kind: ir.KindSimple, Operator: ir.OpGt, Value: "0", Field: "stock"},
		},
	}
	mask, ok := evaluateVectorized(cond, tbl, "price")
	if !ok {
		t.Fatal("expected vectorized evaluation to succeed")
	}
	if mask.Values[0] {
		t.Error("row 0 should fail the AND (price too low, stock zero)")
	}
	if !mask.Values[1] {
		t.Error("row 1 should pass the AND")
	}
}

func TestEvalSimple_Matches(t *testing.T) {
	cond := &ir.CompiledCondition{Kind: ir.KindSimple, Operator: ir.OpMatches, Regex: regexp.MustCompile(`^\d+$`)}
	if !evalSimple(cond, "12345", true) {
		t.Error("expected digits-only string to match")
	}
	if evalSimple(cond, "12a45", true) {
		t.Error("expected string with a letter to not match")
	}
}

func TestEvalSimple_IsEmail(t *testing.T) {
	cond := &ir.CompiledCondition{Kind: ir.KindSimple, Operator: ir.OpIsEmail}
	if !evalSimple(cond, "buyer@example.com", true) {
		t.Error("expected a valid email to match")
	}
	if evalSimple(cond, "not-an-email", true) {
		t.Error("expected an invalid email to not match")
	}
}
