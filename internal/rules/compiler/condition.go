package compiler

import (
	"strings"

	"rules.evalgo.org/internal/rules/ir"
)

// compileCondition resolves an author-time Condition tree into a
// CompiledCondition tree: operator validated, regex/set/terms
// materialized, boolean combinators recursed into (spec §4.2 step 5).
func (c *compileCtx) compileCondition(ruleID string, cond *ir.Condition) (*ir.CompiledCondition, error) {
	if cond == nil {
		cond = ir.DefaultCondition()
	}

	switch cond.Kind() {
	case ir.KindAnd:
		children := make([]*ir.CompiledCondition, 0, len(cond.And))
		for _, child := range cond.And {
			cc, err := c.compileCondition(ruleID, child)
			if err != nil {
				return nil, err
			}
			children = append(children, cc)
		}
		return &ir.CompiledCondition{Kind: ir.KindAnd, And: children}, nil

	case ir.KindOr:
		children := make([]*ir.CompiledCondition, 0, len(cond.Or))
		for _, child := range cond.Or {
			cc, err := c.compileCondition(ruleID, child)
			if err != nil {
				return nil, err
			}
			children = append(children, cc)
		}
		return &ir.CompiledCondition{Kind: ir.KindOr, Or: children}, nil

	case ir.KindNot:
		child, err := c.compileCondition(ruleID, cond.Not)
		if err != nil {
			return nil, err
		}
		return &ir.CompiledCondition{Kind: ir.KindNot, Not: child}, nil
	}

	op, err := ir.ParseOperator(string(cond.Operator))
	if err != nil {
		return nil, ir.NewRuleCompilationError(ruleID, "unknown operator %q", cond.Operator)
	}

	cc := &ir.CompiledCondition{
		Kind:          ir.KindSimple,
		Operator:      op,
		Value:         cond.Value,
		CaseSensitive: cond.CaseSensitive,
		Field:         cond.Field,
	}

	switch op {
	case ir.OpMatches:
		re, err := c.regexes.compile(cond.Value)
		if err != nil {
			return nil, ir.NewRuleCompilationError(ruleID, "invalid regex %q: %v", cond.Value, err)
		}
		cc.Regex = re

	case ir.OpIn, ir.OpNotIn:
		terms := strings.Split(cond.Value, ",")
		set := make(map[string]bool, len(terms))
		for i, term := range terms {
			term = strings.TrimSpace(term)
			terms[i] = term
			key := term
			if !cond.CaseSensitive {
				key = strings.ToLower(key)
			}
			set[key] = true
		}
		cc.Terms = terms
		cc.Set = set
	}

	// An empty Field means the condition reads the rule's own field.
	if cc.Field == "" {
		return cc, nil
	}

	return cc, validateFieldToken(ruleID, cc.Field)
}

func validateFieldToken(ruleID, field string) error {
	if strings.TrimSpace(field) == "" {
		return ir.NewRuleCompilationError(ruleID, "empty field reference")
	}
	return nil
}
