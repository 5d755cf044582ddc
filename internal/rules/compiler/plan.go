package compiler

import "rules.evalgo.org/internal/rules/ir"

// defaultParallelBatchSize bounds how many rules a single ParallelGroups batch may
// contain, keeping any one batch's goroutine fan-out predictable regardless
// of how many rules a document declares (resolved Open Question, DESIGN.md:
// configurable, default 4 to match the runtime's default worker count).
const defaultParallelBatchSize = 4

// buildExecutionPlan partitions compiled rules into the three fixed phases
// (validation, transformation, suggestion — spec §4.3 top-level control
// flow), groups each phase's rules by execution mode, and builds the
// indices the runtime uses for dispatch (spec §4.2 steps 7-9).
func buildExecutionPlan(rules map[string]*ir.CompiledRule, order []string, batchSize int) ir.ExecutionPlan {
	if batchSize <= 0 {
		batchSize = defaultParallelBatchSize
	}

	byPhase := map[ir.PhaseType][]string{
		ir.PhaseValidation:     nil,
		ir.PhaseTransformation: nil,
		ir.PhaseSuggestion:     nil,
	}
	for _, id := range order {
		rule := rules[id]
		if !rule.Enabled {
			continue
		}
		phase := rule.Phase()
		byPhase[phase] = append(byPhase[phase], id)
	}

	phaseOrder := []ir.PhaseType{ir.PhaseValidation, ir.PhaseTransformation, ir.PhaseSuggestion}
	var phases []ir.Phase
	var parallelGroups [][]string

	for _, phaseType := range phaseOrder {
		ids := byPhase[phaseType]
		if len(ids) == 0 {
			continue
		}
		groups := groupByMode(rules, ids, batchSize)
		canVectorize := false
		for _, g := range groups {
			if g.ExecutionMode == ir.ModeVectorized {
				canVectorize = true
			}
			if g.ExecutionMode == ir.ModeParallel {
				parallelGroups = append(parallelGroups, g.RuleIDs)
			}
		}
		phases = append(phases, ir.Phase{Type: phaseType, RuleGroups: groups, CanVectorize: canVectorize})
	}

	fieldIndex := map[string][]string{}
	precedenceIndex := map[int][]string{}
	for _, id := range order {
		rule := rules[id]
		fieldIndex[rule.Field] = append(fieldIndex[rule.Field], id)
		precedenceIndex[rule.Precedence] = append(precedenceIndex[rule.Precedence], id)
	}

	return ir.ExecutionPlan{
		Phases:          phases,
		FieldIndex:      fieldIndex,
		PrecedenceIndex: precedenceIndex,
		ParallelGroups:  parallelGroups,
		Optimizations:   []string{"vectorized_simple_conditions", "precedence_stable_order"},
	}
}

// groupByMode buckets ids (already in precedence/dependency-stable order)
// into RuleGroups, one group per contiguous run of the same preferred mode,
// splitting parallel runs at batchSize boundaries so no single group
// over-subscribes the worker pool.
func groupByMode(rules map[string]*ir.CompiledRule, ids []string, batchSize int) []ir.RuleGroup {
	var groups []ir.RuleGroup
	i := 0
	for i < len(ids) {
		mode := rules[ids[i]].PreferredMode()
		j := i + 1
		limit := len(ids)
		if mode == ir.ModeParallel {
			limit = min(len(ids), i+batchSize)
		}
		for j < limit && rules[ids[j]].PreferredMode() == mode {
			j++
		}
		groupIDs := append([]string(nil), ids[i:j]...)
		deps := map[string]bool{}
		for _, id := range groupIDs {
			for f := range rules[id].Dependencies {
				deps[f] = true
			}
		}
		groups = append(groups, ir.RuleGroup{RuleIDs: groupIDs, ExecutionMode: mode, Dependencies: deps})
		i = j
	}
	return groups
}
