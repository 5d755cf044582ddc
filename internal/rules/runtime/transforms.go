package runtime

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"rules.evalgo.org/internal/rules/ir"
)

// ptBRThousands and ptBRDecimal are the clean_price kernel's default
// separators, pt-BR ('.' groups thousands, ',' is the decimal point), per
// the Open Question decision recorded in DESIGN.md.
const (
	ptBRThousands = '.'
	ptBRDecimal   = ','
)

// applyTransform runs action's transform kernel against value and returns
// the transformed string. params come from the compiled action (spec
// §4.4's per-kernel argument tables).
func applyTransform(action *ir.CompiledAction, value string) (string, error) {
	switch action.Operation {
	case "trim":
		return strings.TrimSpace(value), nil
	case "upper":
		return strings.ToUpper(value), nil
	case "lower":
		return strings.ToLower(value), nil
	case "title_case":
		return titleCase(value), nil
	case "format":
		return applyFormat(action.Params, value), nil
	case "clean_price":
		return cleanPrice(action.Params, value)
	case "clean_upc":
		return cleanUPC(value), nil
	case "regex_replace":
		return applyRegexReplace(action, value), nil
	default:
		return value, fmt.Errorf("runtime: unknown transform operation %q", action.Operation)
	}
}

// titleCase upper-cases the first letter of each whitespace-delimited word
// and lower-cases the rest, matching the teacher pack's simple title-casing
// convention (no locale-specific exception list).
func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		r := []rune(strings.ToLower(f))
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}

// applyFormat interpolates `{value}` in params["template"] with the input,
// e.g. a template of "SKU-{value}" over "123" yields "SKU-123" (spec §4.4
// `format` kernel).
func applyFormat(params map[string]string, value string) string {
	template := params["template"]
	if template == "" {
		return value
	}
	return strings.ReplaceAll(template, "{value}", value)
}

// cleanPrice strips locale-specific grouping/decimal punctuation and
// currency symbols, returning a canonical "." decimal string. params may
// override the locale separators via "thousands"/"decimal" (single-rune
// strings); the default is pt-BR.
func cleanPrice(params map[string]string, value string) (string, error) {
	thousands, decimal := ptBRThousands, ptBRDecimal
	if v, ok := params["thousands"]; ok && v != "" {
		thousands = rune(v[0])
	}
	if v, ok := params["decimal"]; ok && v != "" {
		decimal = rune(v[0])
	}

	var b strings.Builder
	for _, r := range value {
		switch {
		case r == thousands:
			continue
		case r == decimal:
			b.WriteRune('.')
		case unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return "", fmt.Errorf("runtime: clean_price found no numeric content in %q", value)
	}
	if _, err := strconv.ParseFloat(cleaned, 64); err != nil {
		return "", fmt.Errorf("runtime: clean_price produced invalid number %q from %q: %w", cleaned, value, err)
	}
	return cleaned, nil
}

// cleanUPC strips every non-digit character, used to normalize scanned or
// pasted GTIN/UPC values that carry stray hyphens or spaces.
func cleanUPC(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func applyRegexReplace(action *ir.CompiledAction, value string) string {
	if action.Regex == nil {
		return value
	}
	replacement := action.Params["replacement"]
	return action.Regex.ReplaceAllString(value, replacement)
}
