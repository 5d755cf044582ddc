package ir

import "time"

// RuleViolation is a failed assertion (spec §3). RowIndex is nil for
// column- or global-scoped rules (spec §4.3.1).
type RuleViolation struct {
	RuleID        string
	Field         string
	RowIndex      *int
	Message       string
	Severity      Severity
	ActualValue   string
	ExpectedValue string
	Suggestion    string
	IsInfo        bool // severity=info violations are routed to Warnings but tagged (spec §4.3.3)
}

// RuleSuggestion is a value suggestion emitted by a `suggest` rule (spec
// §3).
type RuleSuggestion struct {
	RuleID          string
	Field           string
	RowIndex        int
	CurrentValue    string
	SuggestedValues []string
	Confidence      float64
	Reason          string
}

// RuleTransformation is a value transformation emitted by a `transform` rule
// (spec §3). Emitted only when TransformedValue != OriginalValue (spec §9
// Open Question, resolved).
type RuleTransformation struct {
	RuleID           string
	Field            string
	RowIndex         int
	OriginalValue    string
	TransformedValue string
	Operation        string
}

// ExecutionStats carries runtime counters for diagnostics/telemetry (spec
// §3, §6 "numeric counters only; no PII").
type ExecutionStats struct {
	TotalRows             int
	ProcessedRows         int
	Errors                int
	Warnings              int
	Suggestions           int
	Transformations       int
	RulesExecuted         int
	VectorizedOperations  int
	CacheHits             int
	CacheMisses           int
	ExecutionTimeMs       float64
	PeakMemoryBytes       int64
	UnknownTransformWarns int
	RuleEvaluationErrors  int
	TimedOut              bool
	Aborted               bool
}

// ExecutionResult is the output of a single runtime invocation (spec §3).
type ExecutionResult struct {
	Errors          []RuleViolation
	Warnings        []RuleViolation
	Suggestions     []RuleSuggestion
	Transformations []RuleTransformation
	Stats           ExecutionStats
	StartedAt       time.Time
	FinishedAt      time.Time
}
