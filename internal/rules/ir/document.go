package ir

// SourceFieldMapping is a single entry of a document's raw `ccm_mapping`
// (spec §3): canonical field name -> source-column descriptor.
type SourceFieldMapping struct {
	CanonicalField string
	SourceField    string
	Transform      string // optional transform operation name applied on ingest
	DefaultValue   string
	Required       bool
	DependsOn      []string // other canonical fields this mapping's default/transform reads
}

// CompatibilityConfig controls cross-version rule-set compatibility
// handling (spec §3, §6). All fields are optional with the documented
// defaults.
type CompatibilityConfig struct {
	AutoApplyPatch             bool
	ShadowPeriodDays           int
	RequireMajorOptIn          bool
	ValidateFieldRemovals      bool
	ValidateTypeChanges        bool
	ValidateConstraintTighten  bool
	FallbackOnError            bool
	MaxFallbackVersions        int
}

// DefaultCompatibilityConfig returns the documented defaults (spec §6).
func DefaultCompatibilityConfig() CompatibilityConfig {
	return CompatibilityConfig{
		AutoApplyPatch:            true,
		ShadowPeriodDays:          30,
		RequireMajorOptIn:         true,
		ValidateFieldRemovals:     true,
		ValidateTypeChanges:       true,
		ValidateConstraintTighten: true,
		FallbackOnError:           true,
		MaxFallbackVersions:       3,
	}
}

// RuleDocument is the parsed, pre-compile form of an authored rule document
// (spec §3).
type RuleDocument struct {
	SchemaVersion string
	Marketplace   string
	Version       string
	CCMMapping    []SourceFieldMapping
	Rules         []RuleEntry
	Compatibility CompatibilityConfig
	Metadata      map[string]string
}
