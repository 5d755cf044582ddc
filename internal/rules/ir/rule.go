package ir

import "regexp"

// idPattern is the rule id constraint from spec §3/§6:
// `^[a-z][a-z0-9_]{2,63}$` — a lowercase letter followed by 2 to 63
// lowercase alphanumerics/underscores (3 to 64 characters total).
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{2,63}$`)

// ValidRuleID reports whether id satisfies the document surface's id
// constraint.
func ValidRuleID(id string) bool {
	return idPattern.MatchString(id)
}

// RuleEntry is a single authored rule, exactly as it appears (after
// defaulting) in a parsed RuleDocument (spec §3).
type RuleEntry struct {
	ID         string
	Field      string
	Type       RuleType
	Precedence int
	Scope      Scope
	Condition  *Condition
	Action     *Action
	Message    string
	Severity   Severity
	Enabled    bool
	Tags       []string
}

// DefaultPrecedence is the RuleEntry default per spec §3.
const DefaultPrecedence = 500

// CompiledRule mirrors RuleEntry with condition/action pre-resolved: regexes
// compiled, `in` lists materialized, enums parsed (spec §3's CompiledRule).
type CompiledRule struct {
	ID         string
	Field      string
	Type       RuleType
	Precedence int
	Scope      Scope
	Condition  *CompiledCondition
	Action     *CompiledAction
	Message    string
	Severity   Severity
	Enabled    bool
	Tags       []string

	// Fields referenced by this rule's condition/action, excluding its own
	// Field (spec §4.2 step 6). Computed once at compile time.
	Dependencies map[string]bool
}

// Phase reports which execution phase this rule belongs to, derived from
// its action type (spec §9 Open Question, resolved in favor of action-type
// derivation over id-prefix heuristics).
func (r *CompiledRule) Phase() PhaseType {
	return PhaseForRuleType(r.Type)
}

// PreferredMode reports the execution mode the compiler should prefer for
// this rule when grouping (spec §4.2 step 7): vectorized if the rule is
// row-scoped and its condition is a single recognized vectorizable simple
// operator; otherwise parallel if row-scoped; otherwise sequential.
func (r *CompiledRule) PreferredMode() ExecutionMode {
	if r.Scope != ScopeRow {
		return ModeSequential
	}
	if r.Condition != nil && r.Condition.Kind == KindSimple && conditionIsVectorizable(r.Condition) {
		return ModeVectorized
	}
	return ModeParallel
}

// conditionIsVectorizable reports whether every simple operator reachable in
// the condition tree has a native columnar implementation (spec §4.3.2 lists
// every recognized operator as vectorizable; a tree of only recognized
// operators combined with and/or/not is therefore vectorizable as a whole).
func conditionIsVectorizable(c *CompiledCondition) bool {
	if c == nil {
		return false
	}
	switch c.Kind {
	case KindAnd:
		for _, child := range c.And {
			if !conditionIsVectorizable(child) {
				return false
			}
		}
		return len(c.And) > 0
	case KindOr:
		for _, child := range c.Or {
			if !conditionIsVectorizable(child) {
				return false
			}
		}
		return len(c.Or) > 0
	case KindNot:
		return conditionIsVectorizable(c.Not)
	default:
		return c.Operator.IsVectorizable()
	}
}
