package compiler

import "rules.evalgo.org/internal/rules/ir"

// transformOperations enumerates the transform kernels the runtime knows how
// to execute (spec §4.4). Compiling a transform rule against an operation
// outside this set is rejected at compile time rather than surfacing as a
// runtime UnknownTransformWarn, so typos are caught before a document ships.
var transformOperations = map[string]bool{
	"trim": true, "upper": true, "lower": true, "title_case": true,
	"format": true, "clean_price": true, "clean_upc": true, "regex_replace": true,
}

// compileAction resolves an author-time Action into a CompiledAction,
// precompiling a regex_replace pattern through the shared regex cache.
func (c *compileCtx) compileAction(ruleID string, ruleType ir.RuleType, action *ir.Action) (*ir.CompiledAction, error) {
	if action == nil {
		return nil, ir.NewRuleCompilationError(ruleID, "rule has no action")
	}

	compiled := &ir.CompiledAction{
		StopOnError: action.StopOnError,
		Operation:   action.Operation,
		Value:       action.Value,
		Params:      action.Params,
		Suggestions: action.Suggestions,
		Confidence:  action.Confidence,
	}

	switch ruleType {
	case ir.TypeTransform:
		if !transformOperations[action.Operation] {
			return nil, ir.NewRuleCompilationError(ruleID, "unknown transform operation %q", action.Operation)
		}
		if action.Operation == "regex_replace" {
			pattern, ok := action.Params["pattern"]
			if !ok || pattern == "" {
				return nil, ir.NewRuleCompilationError(ruleID, "regex_replace requires a %q param", "pattern")
			}
			re, err := c.regexes.compile(pattern)
			if err != nil {
				return nil, ir.NewRuleCompilationError(ruleID, "invalid regex_replace pattern %q: %v", pattern, err)
			}
			compiled.Regex = re
		}

	case ir.TypeSuggest:
		if len(action.Suggestions) == 0 {
			return nil, ir.NewRuleCompilationError(ruleID, "suggest rule requires at least one suggestion")
		}
		if action.Confidence < 0 || action.Confidence > 1 {
			return nil, ir.NewRuleCompilationError(ruleID, "suggest confidence must be between 0 and 1, got %v", action.Confidence)
		}
	}

	return compiled, nil
}
