package compiler

import (
	"testing"

	"rules.evalgo.org/internal/rules/cfm"
	"rules.evalgo.org/internal/rules/ir"
)

func TestCompileCCMMapping_OrdersByDependency(t *testing.T) {
	ctx := &compileCtx{regexes: newRegexCache(8), cfmModel: cfm.DefaultModel()}
	mapping, err := ctx.compileCCMMapping([]ir.SourceFieldMapping{
		{CanonicalField: "currency", SourceField: "Currency", DependsOn: []string{"price_brl"}},
		{CanonicalField: "price_brl", SourceField: "Price"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := map[string]int{}
	for i, f := range mapping.ValidationOrder {
		pos[f] = i
	}
	if pos["price_brl"] > pos["currency"] {
		t.Errorf("expected price_brl to validate before currency, got order %v", mapping.ValidationOrder)
	}
}

func TestCompileCCMMapping_RejectsUnknownCanonicalField(t *testing.T) {
	ctx := &compileCtx{regexes: newRegexCache(8), cfmModel: cfm.DefaultModel()}
	_, err := ctx.compileCCMMapping([]ir.SourceFieldMapping{
		{CanonicalField: "not_a_real_field", SourceField: "X"},
	})
	if err == nil {
		t.Fatal("expected an error for an unknown canonical field")
	}
}
