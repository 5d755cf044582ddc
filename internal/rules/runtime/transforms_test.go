package runtime

import (
	"regexp"
	"testing"

	"rules.evalgo.org/internal/rules/ir"
)

func TestApplyTransform_Trim(t *testing.T) {
	out, err := applyTransform(&ir.CompiledAction{Operation: "trim"}, "  hello  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello" {
		t.Errorf("expected trimmed value, got %q", out)
	}
}

func TestApplyTransform_TitleCase(t *testing.T) {
	out, _ := applyTransform(&ir.CompiledAction{Operation: "title_case"}, "wireless MOUSE pad")
	if out != "Wireless Mouse Pad" {
		t.Errorf("unexpected title case result: %q", out)
	}
}

func TestApplyTransform_CleanPriceDefaultsToPtBR(t *testing.T) {
	out, err := applyTransform(&ir.CompiledAction{Operation: "clean_price"}, "R$ 1.234,56")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1234.56" {
		t.Errorf("expected pt-BR price cleanup, got %q", out)
	}
}

func TestApplyTransform_CleanPriceRejectsNonNumeric(t *testing.T) {
	_, err := applyTransform(&ir.CompiledAction{Operation: "clean_price"}, "not a price")
	if err == nil {
		t.Fatal("expected an error for non-numeric price input")
	}
}

func TestApplyTransform_CleanUPCStripsNonDigits(t *testing.T) {
	out, _ := applyTransform(&ir.CompiledAction{Operation: "clean_upc"}, "789-123 456")
	if out != "789123456" {
		t.Errorf("unexpected clean_upc result: %q", out)
	}
}

func TestApplyTransform_RegexReplace(t *testing.T) {
	action := &ir.CompiledAction{
		Operation: "regex_replace",
		Params:    map[string]string{"replacement": ""},
		Regex:     regexp.MustCompile(`<[^>]+>`),
	}
	out, _ := applyTransform(action, "<b>Bold</b> title")
	if out != "Bold title" {
		t.Errorf("unexpected regex_replace result: %q", out)
	}
}

func TestApplyTransform_UnknownOperation(t *testing.T) {
	_, err := applyTransform(&ir.CompiledAction{Operation: "not_a_kernel"}, "x")
	if err == nil {
		t.Fatal("expected an error for an unknown transform operation")
	}
}
