package ir

import "fmt"

// CompilationError is the single fatal-error type the compiler returns
// (spec §4.2, §7): every malformed document or rule maps to one of these,
// localized to a rule id and/or line when known.
type CompilationError struct {
	Message string
	RuleID  string // empty when not localized to a single rule
	Line    int    // 0 when unknown
	Cause   error
}

func (e *CompilationError) Error() string {
	switch {
	case e.RuleID != "" && e.Line > 0:
		return fmt.Sprintf("compile error in rule %q at line %d: %s", e.RuleID, e.Line, e.Message)
	case e.RuleID != "":
		return fmt.Sprintf("compile error in rule %q: %s", e.RuleID, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("compile error at line %d: %s", e.Line, e.Message)
	default:
		return fmt.Sprintf("compile error: %s", e.Message)
	}
}

func (e *CompilationError) Unwrap() error { return e.Cause }

// NewCompilationError builds a CompilationError with no rule/line
// localization.
func NewCompilationError(format string, args ...any) *CompilationError {
	return &CompilationError{Message: fmt.Sprintf(format, args...)}
}

// NewRuleCompilationError builds a CompilationError localized to ruleID.
func NewRuleCompilationError(ruleID, format string, args ...any) *CompilationError {
	return &CompilationError{RuleID: ruleID, Message: fmt.Sprintf(format, args...)}
}
