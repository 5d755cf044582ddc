package compiler

import "rules.evalgo.org/internal/rules/ir"

// compileRule resolves one RuleEntry into a CompiledRule, including the
// field-dependency set used by later phase/group analysis (spec §4.2 steps
// 5-6).
func (c *compileCtx) compileRule(entry ir.RuleEntry) (*ir.CompiledRule, error) {
	if !ir.ValidRuleID(entry.ID) {
		return nil, ir.NewRuleCompilationError(entry.ID, "rule id does not match the required pattern")
	}
	if entry.Field == "" {
		return nil, ir.NewRuleCompilationError(entry.ID, "rule is missing a target field")
	}

	ruleType, err := ir.ParseRuleType(string(entry.Type))
	if err != nil {
		return nil, ir.NewRuleCompilationError(entry.ID, "%v", err)
	}
	scope, err := ir.ParseScope(string(entry.Scope))
	if err != nil {
		return nil, ir.NewRuleCompilationError(entry.ID, "%v", err)
	}
	severity, err := ir.ParseSeverity(string(entry.Severity))
	if err != nil {
		return nil, ir.NewRuleCompilationError(entry.ID, "%v", err)
	}

	precedence := entry.Precedence
	if precedence == 0 {
		precedence = ir.DefaultPrecedence
	}

	condition, err := c.compileCondition(entry.ID, entry.Condition)
	if err != nil {
		return nil, err
	}
	action, err := c.compileAction(entry.ID, ruleType, entry.Action)
	if err != nil {
		return nil, err
	}

	deps := condition.ReferencedFields(entry.Field)
	delete(deps, entry.Field)

	return &ir.CompiledRule{
		ID:           entry.ID,
		Field:        entry.Field,
		Type:         ruleType,
		Precedence:   precedence,
		Scope:        scope,
		Condition:    condition,
		Action:       action,
		Message:      entry.Message,
		Severity:     severity,
		Enabled:      entry.Enabled,
		Tags:         entry.Tags,
		Dependencies: deps,
	}, nil
}
