package cfm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldResult is the outcome of validating one canonical field on one row,
// grounded on gloudx-ues/lexicon's registry validation shape (name,
// is_valid, severity, message, optional suggestion/normalized value).
type FieldResult struct {
	Field      string
	IsValid    bool
	Severity   string // "error" | "warning"
	Message    string
	Original   string
	Normalized string
	HasNorm    bool
}

// Validate runs per-field checks followed by cross-field checks over one
// row (field name -> raw string value; a field absent from row is treated
// as missing, not empty-string).
func (m *Model) Validate(row map[string]string) []FieldResult {
	var out []FieldResult
	for _, name := range m.FieldOrder {
		spec := m.Fields[name]
		value, present := row[name]
		out = append(out, validateField(spec, value, present)...)
	}
	for _, check := range m.CrossChecks {
		out = check.Check(row, out)
	}
	return out
}

func validateField(spec FieldSpec, value string, present bool) []FieldResult {
	var out []FieldResult
	if !present || value == "" {
		if spec.Required {
			out = append(out, FieldResult{
				Field: spec.Name, IsValid: false, Severity: "error",
				Message: fmt.Sprintf("%s is required", spec.Name),
			})
		}
		return out
	}

	if spec.MinLength > 0 && len(value) < spec.MinLength {
		out = append(out, FieldResult{
			Field: spec.Name, IsValid: false, Severity: "error", Original: value,
			Message: fmt.Sprintf("%s must be at least %d characters", spec.Name, spec.MinLength),
		})
	}
	if spec.MaxLength > 0 && len(value) > spec.MaxLength {
		out = append(out, FieldResult{
			Field: spec.Name, IsValid: false, Severity: "error", Original: value,
			Message:    fmt.Sprintf("%s exceeds maximum length %d", spec.Name, spec.MaxLength),
			Normalized: value[:spec.MaxLength], HasNorm: true,
		})
	}
	if spec.Pattern != nil && !spec.Pattern.MatchString(value) {
		out = append(out, FieldResult{
			Field: spec.Name, IsValid: false, Severity: "error", Original: value,
			Message: fmt.Sprintf("%s does not match the required pattern", spec.Name),
		})
	}
	if len(spec.AllowedValues) > 0 && !contains(spec.AllowedValues, value) {
		out = append(out, FieldResult{
			Field: spec.Name, IsValid: false, Severity: "error", Original: value,
			Message: fmt.Sprintf("%s must be one of %s", spec.Name, strings.Join(spec.AllowedValues, ", ")),
		})
	}

	switch spec.Type {
	case TypeInteger:
		out = append(out, validateNumeric(spec, value, true)...)
	case TypeDecimal, TypeCurrency:
		out = append(out, validateNumeric(spec, value, false)...)
	case TypeObject:
		if !json.Valid([]byte(value)) {
			out = append(out, FieldResult{
				Field: spec.Name, IsValid: false, Severity: "error", Original: value,
				Message: fmt.Sprintf("%s is not well-formed JSON", spec.Name),
			})
		}
	}

	return out
}

func validateNumeric(spec FieldSpec, value string, integer bool) []FieldResult {
	var n float64
	var err error
	if integer {
		var i int64
		i, err = strconv.ParseInt(value, 10, 64)
		n = float64(i)
	} else {
		n, err = strconv.ParseFloat(value, 64)
	}
	if err != nil {
		return []FieldResult{{
			Field: spec.Name, IsValid: false, Severity: "error", Original: value,
			Message: fmt.Sprintf("%s is not a valid number", spec.Name),
		}}
	}
	if spec.MustBePositive {
		if (spec.AllowZero && n < 0) || (!spec.AllowZero && n <= 0) {
			return []FieldResult{{
				Field: spec.Name, IsValid: false, Severity: "error", Original: value,
				Message: fmt.Sprintf("%s must be positive", spec.Name),
			}}
		}
	}
	return nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
