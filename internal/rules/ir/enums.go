// Package ir defines the immutable intermediate-representation value types
// produced by the rule compiler and consumed by the rule runtime: semver
// triples, condition/action trees, compiled rules, execution plans, and the
// four result streams (violations, warnings, transformations, suggestions).
//
// Every exported type here is a value object. Nothing in this package
// mutates a constructed value in place; "updating" a rule set means building
// a new one. Behavior is limited to parsing and validating enum values,
// rule ids and semver strings; regex compilation and confidence bounds are
// checked by the compiler package.
package ir

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a parsed semver triple, matching the document surface's
// `^\d+\.\d+\.\d+$` constraint (spec §6).
type Version struct {
	Major, Minor, Patch int
}

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// ParseVersion parses a strict "major.minor.patch" string. Pre-release or
// build metadata suffixes are rejected, matching the document surface's
// exact pattern rather than full semver.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("ir: invalid version %q: must match major.minor.patch", s)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// String renders the version in canonical "major.minor.patch" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// other, comparing major then minor then patch.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmpInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmpInt(v.Minor, other.Minor)
	}
	return cmpInt(v.Patch, other.Patch)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Severity classifies a failed assertion (spec §3).
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity parses and validates a severity string, defaulting unset
// input to SeverityError per spec §3's RuleEntry default.
func ParseSeverity(s string) (Severity, error) {
	if s == "" {
		return SeverityError, nil
	}
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("ir: unknown severity %q", s)
	}
}

// Scope is the unit of evaluation for a rule (spec §3, §4.3.1).
type Scope string

const (
	ScopeRow    Scope = "row"
	ScopeColumn Scope = "column"
	ScopeGlobal Scope = "global"
)

// ParseScope parses and validates a scope string, defaulting unset input to
// ScopeRow per spec §3's RuleEntry default.
func ParseScope(s string) (Scope, error) {
	if s == "" {
		return ScopeRow, nil
	}
	switch Scope(s) {
	case ScopeRow, ScopeColumn, ScopeGlobal:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("ir: unknown scope %q", s)
	}
}

// RuleType is the rule's action kind, which also determines its execution
// phase under the action-type phase-derivation rule (spec §9 Open Question,
// resolved: phase is derived from action.type, never from rule id).
type RuleType string

const (
	TypeAssert    RuleType = "assert"
	TypeTransform RuleType = "transform"
	TypeSuggest   RuleType = "suggest"
)

// ParseRuleType parses and validates a rule type string. Unlike severity and
// scope, rule type has no default: every RuleEntry must state it (spec §3).
func ParseRuleType(s string) (RuleType, error) {
	switch RuleType(s) {
	case TypeAssert, TypeTransform, TypeSuggest:
		return RuleType(s), nil
	default:
		return "", fmt.Errorf("ir: unknown rule type %q", s)
	}
}

// PhaseType orders the three execution phases (spec §4.3 top-level control
// flow): validation always precedes transformation, which always precedes
// suggestion.
type PhaseType string

const (
	PhaseValidation     PhaseType = "validation"
	PhaseTransformation PhaseType = "transformation"
	PhaseSuggestion     PhaseType = "suggestion"
)

// PhaseForRuleType maps a rule's action type to its execution phase.
func PhaseForRuleType(t RuleType) PhaseType {
	switch t {
	case TypeTransform:
		return PhaseTransformation
	case TypeSuggest:
		return PhaseSuggestion
	default:
		return PhaseValidation
	}
}

// ExecutionMode is the dispatch strategy chosen for a rule group (spec §3,
// §4.2 step 7).
type ExecutionMode string

const (
	ModeSequential ExecutionMode = "sequential"
	ModeParallel   ExecutionMode = "parallel"
	ModeVectorized ExecutionMode = "vectorized"
)

// Operator enumerates the recognized simple condition operators (spec §3,
// §4.3.2).
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startswith"
	OpEndsWith   Operator = "endswith"
	OpMatches    Operator = "matches"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not_in"
	OpEmpty      Operator = "empty"
	OpNotEmpty   Operator = "not_empty"
	OpLengthEq   Operator = "length_eq"
	OpLengthGt   Operator = "length_gt"
	OpLengthLt   Operator = "length_lt"
	OpIsNumber   Operator = "is_number"
	OpIsEmail    Operator = "is_email"
	OpIsURL      Operator = "is_url"
	OpIsDate     Operator = "is_date"
)

var knownOperators = map[Operator]bool{
	OpEq: true, OpNe: true, OpGt: true, OpGte: true, OpLt: true, OpLte: true,
	OpContains: true, OpStartsWith: true, OpEndsWith: true, OpMatches: true,
	OpIn: true, OpNotIn: true, OpEmpty: true, OpNotEmpty: true,
	OpLengthEq: true, OpLengthGt: true, OpLengthLt: true,
	OpIsNumber: true, OpIsEmail: true, OpIsURL: true, OpIsDate: true,
}

// ParseOperator validates an operator name against the recognized set.
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if !knownOperators[op] {
		return "", fmt.Errorf("ir: unknown operator %q", s)
	}
	return op, nil
}

// IsVectorizable reports whether op has a native columnar implementation
// (spec §4.3.2's table covers every recognized operator, so this is always
// true for a validated Operator; kept as a named predicate for readability
// at call sites that branch on it, e.g. compiler group-mode selection).
func (op Operator) IsVectorizable() bool {
	return knownOperators[op]
}

// EmailPattern and URLPattern are the canonical regexes named in spec
// §4.3.2 for is_email/is_url.
var (
	EmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	URLPattern   = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
)

// TrimEmpty reports whether s is empty once surrounding whitespace is
// stripped, the shared definition of "empty" used by the empty/not_empty
// operators (spec §4.3.2) and by the CFM's string normalization.
func TrimEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
