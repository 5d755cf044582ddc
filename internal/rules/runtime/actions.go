package runtime

import (
	"github.com/sirupsen/logrus"

	"rules.evalgo.org/internal/rules/ir"
	"rules.evalgo.org/internal/rules/table"
)

// runAssert takes the already evaluated condition result for row and, when
// it is false, produces a RuleViolation. A passing assert row produces
// nothing (spec §4.3.3). RowIndex is set only for row-scoped rules.
func runAssert(rule *ir.CompiledRule, tbl *table.Table, row int, matched bool) *ir.RuleViolation {
	if matched {
		return nil
	}
	var rowIndex *int
	if rule.Scope == ir.ScopeRow {
		idx := row
		rowIndex = &idx
	}
	var actual string
	if col, ok := tbl.Column(rule.Field); ok {
		actual, _ = col.At(row)
	}
	return &ir.RuleViolation{
		RuleID:      rule.ID,
		Field:       rule.Field,
		RowIndex:    rowIndex,
		Message:     rule.Message,
		Severity:    rule.Severity,
		ActualValue: actual,
		Suggestion:  rule.Action.Value,
		IsInfo:      rule.Severity == ir.SeverityInfo,
	}
}

// runTransform applies rule's transform kernel at row when the condition
// matched, returning a RuleTransformation only if the value actually
// changed (spec §9 Open Question, resolved: transform is emitted only on
// real change), the new value to materialize into the working table, and
// whether the kernel itself reported an unknown/invalid operation (the
// caller counts these in Stats.UnknownTransformWarns).
func runTransform(rule *ir.CompiledRule, tbl *table.Table, row int, matched bool, log *logrus.Entry) (transformation *ir.RuleTransformation, newValue string, changed bool, unknownOp bool) {
	if !matched {
		return nil, "", false, false
	}
	col, ok := tbl.Column(rule.Field)
	if !ok {
		return nil, "", false, false
	}
	original, present := col.At(row)
	if !present {
		return nil, "", false, false
	}

	transformed, err := applyTransform(rule.Action, original)
	if err != nil {
		log.WithError(err).WithField("rule_id", rule.ID).Warn("transform kernel reported an unknown or invalid operation")
		return nil, "", false, true
	}
	if transformed == original {
		return nil, "", false, false
	}

	return &ir.RuleTransformation{
		RuleID:           rule.ID,
		Field:            rule.Field,
		RowIndex:         row,
		OriginalValue:    original,
		TransformedValue: transformed,
		Operation:        rule.Action.Operation,
	}, transformed, true, false
}

// runSuggest takes the already evaluated condition result for row and, when
// it is true, produces a RuleSuggestion carrying the action's candidate values (spec
// §4.3.3).
func runSuggest(rule *ir.CompiledRule, tbl *table.Table, row int, matched bool) *ir.RuleSuggestion {
	if !matched {
		return nil
	}
	var current string
	if col, ok := tbl.Column(rule.Field); ok {
		current, _ = col.At(row)
	}
	return &ir.RuleSuggestion{
		RuleID:          rule.ID,
		Field:           rule.Field,
		RowIndex:        row,
		CurrentValue:    current,
		SuggestedValues: rule.Action.Suggestions,
		Confidence:      rule.Action.Confidence,
		Reason:          rule.Message,
	}
}
