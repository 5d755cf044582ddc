package compiler

import (
	"strings"
	"testing"

	"rules.evalgo.org/internal/rules/ir"
)

const minimalDoc = `
schema_version: "1.0.0"
marketplace: mercado_livre
version: "1.0.0"
ccm_mapping:
  - canonical_field: sku
    source_field: SKU
  - canonical_field: price_brl
    source_field: Price
rules:
  - id: sku_required
    field: sku
    type: assert
    condition:
      operator: not_empty
    action:
      stop_on_error: false
    message: "sku is required"
    severity: error
`

func TestCompile_MinimalDocumentSucceeds(t *testing.T) {
	ruleset, err := Compile([]byte(minimalDoc), CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ruleset.Marketplace != "mercado_livre" {
		t.Errorf("unexpected marketplace: %q", ruleset.Marketplace)
	}
	if len(ruleset.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(ruleset.Rules))
	}
	if ruleset.Checksum == "" {
		t.Error("expected a non-empty checksum")
	}
}

func TestCompile_SameDocumentIsDeterministicChecksum(t *testing.T) {
	a, err := Compile([]byte(minimalDoc), CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Compile([]byte(minimalDoc), CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Checksum != b.Checksum {
		t.Errorf("expected identical checksums, got %q and %q", a.Checksum, b.Checksum)
	}
}

func TestCompile_MissingSchemaVersionFails(t *testing.T) {
	doc := strings.Replace(minimalDoc, `schema_version: "1.0.0"`, "", 1)
	_, err := Compile([]byte(doc), CompileOptions{})
	if err == nil {
		t.Fatal("expected an error for missing schema_version")
	}
}

func TestCompile_UnknownCanonicalFieldInMappingFails(t *testing.T) {
	doc := strings.Replace(minimalDoc, "canonical_field: sku", "canonical_field: not_a_real_field", 1)
	_, err := Compile([]byte(doc), CompileOptions{})
	if err == nil {
		t.Fatal("expected an error for an unknown canonical field")
	}
}

func TestCompile_InvalidOperatorFails(t *testing.T) {
	doc := strings.Replace(minimalDoc, "operator: not_empty", "operator: bogus_operator", 1)
	_, err := Compile([]byte(doc), CompileOptions{})
	if err == nil {
		t.Fatal("expected an error for an unknown operator")
	}
}

func TestCompile_DuplicateRuleIDFails(t *testing.T) {
	doc := minimalDoc + `
  - id: sku_required
    field: sku
    type: assert
    condition:
      operator: not_empty
    action:
      stop_on_error: false
`
	_, err := Compile([]byte(doc), CompileOptions{})
	if err == nil {
		t.Fatal("expected an error for a duplicate rule id")
	}
}

func TestCompile_TransformRuleCompilesToTransformationPhase(t *testing.T) {
	doc := `
schema_version: "1.0.0"
marketplace: mercado_livre
version: "1.0.0"
rules:
  - id: trim_title
    field: title
    type: transform
    condition:
      operator: not_empty
    action:
      operation: trim
`
	ruleset, err := Compile([]byte(doc), CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rule := ruleset.Rules["trim_title"]
	if rule.Phase() != ir.PhaseTransformation {
		t.Errorf("expected transformation phase, got %v", rule.Phase())
	}
}

func TestCompile_RegexReplaceRequiresPatternParam(t *testing.T) {
	doc := `
schema_version: "1.0.0"
marketplace: mercado_livre
version: "1.0.0"
rules:
  - id: strip_tags
    field: title
    type: transform
    condition:
      operator: not_empty
    action:
      operation: regex_replace
      params:
        replacement: ""
`
	_, err := Compile([]byte(doc), CompileOptions{})
	if err == nil {
		t.Fatal("expected an error for regex_replace without a pattern param")
	}
}

func TestValidate_ReturnsNilForWellFormedDocument(t *testing.T) {
	if err := Validate([]byte(minimalDoc), CompileOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompile_GroupsRulesByPrecedence(t *testing.T) {
	doc := `
schema_version: "1.0.0"
marketplace: mercado_livre
version: "1.0.0"
rules:
  - id: rule_low
    field: sku
    precedence: 900
    type: assert
    condition:
      operator: not_empty
    action:
      stop_on_error: false
  - id: rule_high
    field: title
    precedence: 100
    type: assert
    condition:
      operator: not_empty
    action:
      stop_on_error: false
`
	ruleset, err := Compile([]byte(doc), CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ruleset.RuleOrder[0] != "rule_high" {
		t.Errorf("expected rule_high to run first, got order %v", ruleset.RuleOrder)
	}
}

func TestCompile_SamePrecedenceTieBreaksByRuleID(t *testing.T) {
	doc := `
schema_version: "1.0.0"
marketplace: mercado_livre
version: "1.0.0"
rules:
  - id: zebra_rule
    field: sku
    precedence: 500
    type: assert
    condition:
      operator: not_empty
    action:
      stop_on_error: false
  - id: apple_rule
    field: title
    precedence: 500
    type: assert
    condition:
      operator: not_empty
    action:
      stop_on_error: false
`
	ruleset, err := Compile([]byte(doc), CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ruleset.RuleOrder[0] != "apple_rule" || ruleset.RuleOrder[1] != "zebra_rule" {
		t.Errorf("expected precedence-then-id order [apple_rule zebra_rule], got %v", ruleset.RuleOrder)
	}
}
