package cfm

import "testing"

func hasField(results []FieldResult, field string) bool {
	for _, r := range results {
		if r.Field == field {
			return true
		}
	}
	return false
}

func TestValidate_MissingRequiredField(t *testing.T) {
	m := DefaultModel()
	results := m.Validate(map[string]string{"title": "Widget"})
	if !hasField(results, "sku") {
		t.Error("expected a violation for missing sku")
	}
}

func TestValidate_DimensionsAllOrNone(t *testing.T) {
	m := DefaultModel()
	row := map[string]string{
		"sku": "abc123", "title": "Widget", "price_brl": "10.00",
		"currency": "BRL", "stock": "5", "length_cm": "10",
	}
	results := m.Validate(row)
	if !hasField(results, "width_cm") || !hasField(results, "height_cm") {
		t.Errorf("expected dimensions_all_or_none violations, got %+v", results)
	}
}

func TestValidate_CurrencyMustMatchPrice(t *testing.T) {
	m := DefaultModel()
	row := map[string]string{
		"sku": "abc123", "title": "Widget", "price_brl": "10.00",
		"currency": "USD", "stock": "5",
	}
	results := m.Validate(row)
	if !hasField(results, "currency") {
		t.Errorf("expected a currency mismatch violation, got %+v", results)
	}
}

func TestValidate_StockAllowsZero(t *testing.T) {
	m := DefaultModel()
	row := map[string]string{
		"sku": "abc123", "title": "Widget", "price_brl": "10.00",
		"currency": "BRL", "stock": "0",
	}
	results := m.Validate(row)
	if hasField(results, "stock") {
		t.Errorf("expected stock=0 to be valid, got %+v", results)
	}
}

func TestValidate_PriceMustBePositive(t *testing.T) {
	m := DefaultModel()
	row := map[string]string{
		"sku": "abc123", "title": "Widget", "price_brl": "0",
		"currency": "BRL", "stock": "5",
	}
	results := m.Validate(row)
	if !hasField(results, "price_brl") {
		t.Errorf("expected price_brl=0 to be rejected, got %+v", results)
	}
}

func TestNormalize_UppercasesCurrencyAndTrimsTitle(t *testing.T) {
	m := DefaultModel()
	out := m.Normalize(map[string]string{
		"currency": "brl",
		"title":    "  Widget  ",
	})
	if out["currency"] != "BRL" {
		t.Errorf("expected currency to be upper-cased, got %q", out["currency"])
	}
	if out["title"] != "Widget" {
		t.Errorf("expected title to be trimmed, got %q", out["title"])
	}
}
