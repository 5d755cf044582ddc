package cfm

import "testing"

func TestDefaultModel_KnowsDeclaredFields(t *testing.T) {
	m := DefaultModel()
	for _, name := range []string{"sku", "price_brl", "currency", "images"} {
		if !m.Has(name) {
			t.Errorf("expected model to declare field %q", name)
		}
	}
	if m.Has("not_a_field") {
		t.Error("expected unknown field to be absent")
	}
}

func TestGet_ReturnsSpecForKnownField(t *testing.T) {
	m := DefaultModel()
	spec, ok := m.Get("stock")
	if !ok {
		t.Fatal("expected stock field")
	}
	if spec.Type != TypeInteger || !spec.AllowZero || spec.Required {
		t.Errorf("unexpected stock spec: %+v", spec)
	}
}

func TestGet_NCMFieldAcceptsMercosulFormat(t *testing.T) {
	m := DefaultModel()
	spec, ok := m.Get("ncm")
	if !ok {
		t.Fatal("expected ncm field to be declared")
	}
	if !spec.Pattern.MatchString("0101.21.00") {
		t.Error("expected ncm pattern to accept XXXX.XX.XX")
	}
	if spec.Pattern.MatchString("0101210") {
		t.Error("expected ncm pattern to reject an unformatted code")
	}
	if spec.Required {
		t.Error("expected ncm to be optional")
	}
}

func TestGet_CurrencyAllowsBRLUSDEUR(t *testing.T) {
	m := DefaultModel()
	spec, ok := m.Get("currency")
	if !ok {
		t.Fatal("expected currency field")
	}
	if spec.Required {
		t.Error("expected currency to be optional")
	}
	for _, code := range []string{"BRL", "USD", "EUR"} {
		found := false
		for _, v := range spec.AllowedValues {
			if v == code {
				found = true
			}
		}
		if !found {
			t.Errorf("expected currency to allow %q", code)
		}
	}
}
