package cfm

import "strings"

// Normalize applies field-specific cleanup that the validation pass treats
// as a suggestion rather than a hard requirement: trimming whitespace,
// upper-casing the currency code, and prefixing values of TypeURL fields
// with `https://` when a scheme is missing. Array fields such as `images`
// are left as they are, so their URLs get no prefix; DefaultModel declares
// no TypeURL field. It does not attempt pt-BR decimal
// parsing — that belongs to the `clean_price` transform kernel in the
// runtime package, which a rule author opts into explicitly.
func (m *Model) Normalize(row map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = v
	}
	for name, value := range out {
		spec, ok := m.Fields[name]
		if !ok || value == "" {
			continue
		}
		out[name] = normalizeValue(spec, value)
	}
	return out
}

func normalizeValue(spec FieldSpec, value string) string {
	switch spec.Type {
	case TypeString, TypeDecimal, TypeCurrency, TypeInteger:
		value = strings.TrimSpace(value)
	}
	if spec.Name == "currency" {
		value = strings.ToUpper(value)
	}
	if spec.Type == TypeURL && value != "" && !strings.Contains(value, "://") {
		value = "https://" + value
	}
	return value
}
