package ir

import "time"

// CompiledCCMMapping is the resolved form of a document's `ccm_mapping`
// (spec §4.2 step 4): each entry becomes a FieldMapping, and a
// ValidationOrder is computed by topological sort of explicit DependsOn
// edges.
type CompiledCCMMapping struct {
	Fields          map[string]FieldMapping // canonical field -> mapping
	ValidationOrder []string                // canonical field names, dependency order
}

// FieldMapping is the compiled form of a SourceFieldMapping (spec §4.2
// step 4).
type FieldMapping struct {
	CanonicalField string
	SourceField    string
	Transform      string
	DefaultValue   string
	Required       bool
}

// CompileStats carries compilation counters for diagnostics/telemetry (spec
// §3).
type CompileStats struct {
	TotalRules           int
	RulesByType          map[RuleType]int
	RulesByField         map[string]int
	ElapsedMs            float64
	OptimizationsApplied []string
}

// CompiledRuleSet is the immutable, runtime-ready form of an authored rule
// document (spec §3 / GLOSSARY "Compiled rule set (IR)"). It is constructed
// once per authored version and is read-only thereafter.
type CompiledRuleSet struct {
	SchemaVersion string
	Marketplace   string
	Version       Version
	Checksum      string // lowercase hex SHA-256, spec §6
	CompiledAt    time.Time

	CCMMapping CompiledCCMMapping
	Rules      map[string]*CompiledRule // keyed by rule id
	// RuleOrder lists rule ids in precedence-then-id order for deterministic
	// iteration where a map's random order would otherwise leak into
	// diagnostics.
	RuleOrder []string

	ExecutionPlan ExecutionPlan
	Compatibility CompatibilityConfig
	Stats         CompileStats
}
