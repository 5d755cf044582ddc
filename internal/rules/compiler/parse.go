package compiler

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"rules.evalgo.org/internal/rules/ir"
)

// The raw* types mirror the document surface (spec §3) with serialization
// tags and pointer fields so the parser can distinguish "omitted" from
// "explicit zero value" before applying defaults — the same reason the
// teacher's own document types (e.g. workflow step definitions) use pointer
// fields for optional booleans.

type rawDocument struct {
	SchemaVersion string            `yaml:"schema_version" json:"schema_version"`
	Marketplace   string            `yaml:"marketplace" json:"marketplace"`
	Version       string            `yaml:"version" json:"version"`
	CCMMapping    []rawMapping      `yaml:"ccm_mapping" json:"ccm_mapping"`
	Rules         []rawRule         `yaml:"rules" json:"rules"`
	Compatibility *rawCompat        `yaml:"compatibility" json:"compatibility"`
	Metadata      map[string]string `yaml:"metadata" json:"metadata"`
}

type rawMapping struct {
	CanonicalField string   `yaml:"canonical_field" json:"canonical_field"`
	SourceField    string   `yaml:"source_field" json:"source_field"`
	Transform      string   `yaml:"transform" json:"transform"`
	DefaultValue   string   `yaml:"default_value" json:"default_value"`
	Required       bool     `yaml:"required" json:"required"`
	DependsOn      []string `yaml:"depends_on" json:"depends_on"`
}

type rawRule struct {
	ID         string         `yaml:"id" json:"id"`
	Field      string         `yaml:"field" json:"field"`
	Type       string         `yaml:"type" json:"type"`
	Precedence int            `yaml:"precedence" json:"precedence"`
	Scope      string         `yaml:"scope" json:"scope"`
	Condition  *rawCondition  `yaml:"condition" json:"condition"`
	Action     *rawAction     `yaml:"action" json:"action"`
	Message    string         `yaml:"message" json:"message"`
	Severity   string         `yaml:"severity" json:"severity"`
	Enabled    *bool          `yaml:"enabled" json:"enabled"`
	Tags       []string       `yaml:"tags" json:"tags"`
}

type rawCondition struct {
	Operator      string          `yaml:"operator" json:"operator"`
	Value         string          `yaml:"value" json:"value"`
	CaseSensitive bool            `yaml:"case_sensitive" json:"case_sensitive"`
	Field         string          `yaml:"field" json:"field"`
	And           []*rawCondition `yaml:"and" json:"and"`
	Or            []*rawCondition `yaml:"or" json:"or"`
	Not           *rawCondition   `yaml:"not" json:"not"`
}

type rawAction struct {
	StopOnError bool              `yaml:"stop_on_error" json:"stop_on_error"`
	Operation   string            `yaml:"operation" json:"operation"`
	Value       string            `yaml:"value" json:"value"`
	Params      map[string]string `yaml:"params" json:"params"`
	Suggestions []string          `yaml:"suggestions" json:"suggestions"`
	Confidence  float64           `yaml:"confidence" json:"confidence"`
}

type rawCompat struct {
	AutoApplyPatch            *bool `yaml:"auto_apply_patch" json:"auto_apply_patch"`
	ShadowPeriodDays          int   `yaml:"shadow_period_days" json:"shadow_period_days"`
	RequireMajorOptIn         *bool `yaml:"require_major_opt_in" json:"require_major_opt_in"`
	ValidateFieldRemovals     *bool `yaml:"validate_field_removals" json:"validate_field_removals"`
	ValidateTypeChanges       *bool `yaml:"validate_type_changes" json:"validate_type_changes"`
	ValidateConstraintTighten *bool `yaml:"validate_constraint_tighten" json:"validate_constraint_tighten"`
	FallbackOnError           *bool `yaml:"fallback_on_error" json:"fallback_on_error"`
	MaxFallbackVersions       int   `yaml:"max_fallback_versions" json:"max_fallback_versions"`
}

// parseDocument decodes raw bytes (YAML by default, JSON when the content
// looks like a JSON object) into a RuleDocument, applying the RuleEntry and
// CompatibilityConfig defaults documented in spec §3/§6.
func parseDocument(content []byte) (*ir.RuleDocument, error) {
	var raw rawDocument
	trimmed := strings.TrimSpace(string(content))
	var err error
	if strings.HasPrefix(trimmed, "{") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yaml.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, ir.NewCompilationError("failed to parse document: %v", err)
	}

	doc := &ir.RuleDocument{
		SchemaVersion: raw.SchemaVersion,
		Marketplace:   raw.Marketplace,
		Version:       raw.Version,
		Metadata:      raw.Metadata,
		Compatibility: applyCompatDefaults(raw.Compatibility),
	}

	for _, m := range raw.CCMMapping {
		doc.CCMMapping = append(doc.CCMMapping, ir.SourceFieldMapping{
			CanonicalField: m.CanonicalField,
			SourceField:    m.SourceField,
			Transform:      m.Transform,
			DefaultValue:   m.DefaultValue,
			Required:       m.Required,
			DependsOn:      m.DependsOn,
		})
	}

	for _, r := range raw.Rules {
		doc.Rules = append(doc.Rules, convertRule(r))
	}

	return doc, nil
}

func convertRule(r rawRule) ir.RuleEntry {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return ir.RuleEntry{
		ID:         r.ID,
		Field:      r.Field,
		Type:       ir.RuleType(r.Type),
		Precedence: r.Precedence,
		Scope:      ir.Scope(r.Scope),
		Condition:  convertCondition(r.Condition),
		Action:     convertAction(r.Action),
		Message:    r.Message,
		Severity:   ir.Severity(r.Severity),
		Enabled:    enabled,
		Tags:       r.Tags,
	}
}

func convertCondition(c *rawCondition) *ir.Condition {
	if c == nil {
		return nil
	}
	out := &ir.Condition{
		Operator:      ir.Operator(c.Operator),
		Value:         c.Value,
		CaseSensitive: c.CaseSensitive,
		Field:         c.Field,
	}
	for _, child := range c.And {
		out.And = append(out.And, convertCondition(child))
	}
	for _, child := range c.Or {
		out.Or = append(out.Or, convertCondition(child))
	}
	if c.Not != nil {
		out.Not = convertCondition(c.Not)
	}
	return out
}

func convertAction(a *rawAction) *ir.Action {
	if a == nil {
		return nil
	}
	return &ir.Action{
		StopOnError: a.StopOnError,
		Operation:   a.Operation,
		Value:       a.Value,
		Params:      a.Params,
		Suggestions: a.Suggestions,
		Confidence:  a.Confidence,
	}
}

func applyCompatDefaults(c *rawCompat) ir.CompatibilityConfig {
	def := ir.DefaultCompatibilityConfig()
	if c == nil {
		return def
	}
	out := def
	if c.AutoApplyPatch != nil {
		out.AutoApplyPatch = *c.AutoApplyPatch
	}
	if c.ShadowPeriodDays != 0 {
		out.ShadowPeriodDays = c.ShadowPeriodDays
	}
	if c.RequireMajorOptIn != nil {
		out.RequireMajorOptIn = *c.RequireMajorOptIn
	}
	if c.ValidateFieldRemovals != nil {
		out.ValidateFieldRemovals = *c.ValidateFieldRemovals
	}
	if c.ValidateTypeChanges != nil {
		out.ValidateTypeChanges = *c.ValidateTypeChanges
	}
	if c.ValidateConstraintTighten != nil {
		out.ValidateConstraintTighten = *c.ValidateConstraintTighten
	}
	if c.FallbackOnError != nil {
		out.FallbackOnError = *c.FallbackOnError
	}
	if c.MaxFallbackVersions != 0 {
		out.MaxFallbackVersions = c.MaxFallbackVersions
	}
	return out
}
