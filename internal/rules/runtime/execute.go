package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rules.evalgo.org/internal/rules/ir"
	"rules.evalgo.org/internal/rules/table"
)

// Options configures one Execute call (spec §4.3, §9).
type Options struct {
	// Workers bounds parallel rule-group concurrency (default 4).
	Workers int
	// ConditionCacheCapacity bounds the condition-result cache (default
	// 1024).
	ConditionCacheCapacity int
	// SoftDeadline aborts the run between rule groups once exceeded,
	// leaving Stats.TimedOut set and Stats.Aborted set. Zero disables the
	// deadline.
	SoftDeadline time.Duration
	// Logger receives structured diagnostics for each phase/group. A
	// disabled logger is used when nil.
	Logger *logrus.Logger
}

func (o Options) withDefaults() Options {
	if o.Workers == 0 {
		o.Workers = 4
	}
	if o.ConditionCacheCapacity == 0 {
		o.ConditionCacheCapacity = 1024
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
		o.Logger.SetOutput(discard{})
	}
	return o
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// accumulator collects the four result streams under a mutex, since
// parallel rule groups write to it concurrently.
type accumulator struct {
	mu                sync.Mutex
	violations        []ir.RuleViolation
	warnings          []ir.RuleViolation
	suggestions       []ir.RuleSuggestion
	transformations   []ir.RuleTransformation
	evalErrors        int
	vectorizedOps     int
	cacheHits         int
	cacheMisses       int
	unknownTransforms int
}

func (a *accumulator) addViolation(v *ir.RuleViolation) {
	if v == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if v.Severity == ir.SeverityError {
		a.violations = append(a.violations, *v)
	} else {
		a.warnings = append(a.warnings, *v)
	}
}

func (a *accumulator) addSuggestion(s *ir.RuleSuggestion) {
	if s == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.suggestions = append(a.suggestions, *s)
}

func (a *accumulator) addTransformation(t *ir.RuleTransformation) {
	if t == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.transformations = append(a.transformations, *t)
}

func (a *accumulator) addUnknownTransform() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unknownTransforms++
}

// resultSink is the write surface applyRuleResults needs: either the shared
// accumulator (sequential/vectorized groups, already running in
// precedence-then-id order) or a per-job localSink (parallel groups, merged
// into the accumulator in order after the group joins).
type resultSink interface {
	addViolation(*ir.RuleViolation)
	addSuggestion(*ir.RuleSuggestion)
	addTransformation(*ir.RuleTransformation)
	addUnknownTransform()
}

// localSink buffers one rule's results without synchronization — each
// parallel-group job owns exactly one, written only by its own goroutine,
// and read back by the group dispatcher after pool.run returns (spec
// §4.3.5/§5: "result collation re-orders to precedence-then-id").
type localSink struct {
	violations        []ir.RuleViolation
	warnings          []ir.RuleViolation
	suggestions       []ir.RuleSuggestion
	transformations   []ir.RuleTransformation
	unknownTransforms int
}

func (l *localSink) addViolation(v *ir.RuleViolation) {
	if v == nil {
		return
	}
	if v.Severity == ir.SeverityError {
		l.violations = append(l.violations, *v)
	} else {
		l.warnings = append(l.warnings, *v)
	}
}

func (l *localSink) addSuggestion(s *ir.RuleSuggestion) {
	if s == nil {
		return
	}
	l.suggestions = append(l.suggestions, *s)
}

func (l *localSink) addTransformation(t *ir.RuleTransformation) {
	if t == nil {
		return
	}
	l.transformations = append(l.transformations, *t)
}

func (l *localSink) addUnknownTransform() {
	l.unknownTransforms++
}

// flushInto appends l's buffered results onto acc, preserving l's internal
// order.
func (l *localSink) flushInto(acc *accumulator) {
	acc.mu.Lock()
	defer acc.mu.Unlock()
	acc.violations = append(acc.violations, l.violations...)
	acc.warnings = append(acc.warnings, l.warnings...)
	acc.suggestions = append(acc.suggestions, l.suggestions...)
	acc.transformations = append(acc.transformations, l.transformations...)
	acc.unknownTransforms += l.unknownTransforms
}

// Execute runs every enabled rule in ruleset against tbl, phase by phase
// and group by group, in precedence order, and returns the accumulated
// result streams plus execution stats (spec §4.3 top-level control flow).
func Execute(ctx context.Context, ruleset *ir.CompiledRuleSet, tbl *table.Table, opts Options) (*ir.ExecutionResult, error) {
	opts = opts.withDefaults()
	started := time.Now()
	log := opts.Logger.WithField("operation", "execute")

	cache := newConditionCache(opts.ConditionCacheCapacity)
	pool := newWorkerPool(opts.Workers)
	acc := &accumulator{}

	working := tbl
	aborted := false
	timedOut := false
	rulesExecuted := 0

phaseLoop:
	for _, phase := range ruleset.ExecutionPlan.Phases {
		for _, group := range phase.RuleGroups {
			if opts.SoftDeadline > 0 && time.Since(started) > opts.SoftDeadline {
				timedOut = true
				aborted = true
				break phaseLoop
			}

			next, halted, err := runGroup(ctx, ruleset, group, phase.Type, working, cache, pool, acc, log)
			rulesExecuted += len(group.RuleIDs)
			working = next
			if err != nil {
				return nil, err
			}
			if halted {
				aborted = true
				break phaseLoop
			}
		}
	}

	stats := ir.ExecutionStats{
		TotalRows:             tbl.RowCount(),
		ProcessedRows:         working.RowCount(),
		Errors:                len(acc.violations),
		Warnings:              len(acc.warnings),
		Suggestions:           len(acc.suggestions),
		Transformations:       len(acc.transformations),
		RulesExecuted:         rulesExecuted,
		VectorizedOperations:  acc.vectorizedOps,
		CacheHits:             acc.cacheHits,
		CacheMisses:           acc.cacheMisses,
		ExecutionTimeMs:       float64(time.Since(started).Microseconds()) / 1000.0,
		RuleEvaluationErrors:  acc.evalErrors,
		UnknownTransformWarns: acc.unknownTransforms,
		TimedOut:              timedOut,
		Aborted:               aborted,
	}

	return &ir.ExecutionResult{
		Errors:          acc.violations,
		Warnings:        acc.warnings,
		Suggestions:     acc.suggestions,
		Transformations: acc.transformations,
		Stats:           stats,
		StartedAt:       started,
		FinishedAt:      time.Now(),
	}, nil
}

// runGroup dispatches one RuleGroup per its ExecutionMode and returns the
// (possibly updated) working table, whether a stop_on_error assert halted
// the run, and any hard error.
func runGroup(
	ctx context.Context,
	ruleset *ir.CompiledRuleSet,
	group ir.RuleGroup,
	phase ir.PhaseType,
	working *table.Table,
	cache *conditionCache,
	pool *workerPool,
	acc *accumulator,
	log *logrus.Entry,
) (*table.Table, bool, error) {
	halted := false
	groupLog := log.WithField("phase", phase).
		WithField("group_mode", group.ExecutionMode).
		WithField("rule_ids", group.RuleIDs)

	switch group.ExecutionMode {
	case ir.ModeVectorized:
		for _, id := range group.RuleIDs {
			rule := ruleset.Rules[id]
			if !rule.Enabled {
				continue
			}
			mask, ok := evaluateVectorized(rule.Condition, working, rule.Field)
			if !ok {
				log.WithField("rule_id", id).Warn("vectorized evaluation failed, falling back to row-wise")
				mask = buildRowWiseMask(rule, working, cache, acc)
				acc.mu.Lock()
				acc.evalErrors++
				acc.mu.Unlock()
			} else {
				acc.mu.Lock()
				acc.vectorizedOps++
				acc.mu.Unlock()
			}
			update, stop := applyRuleResults(rule, working, mask, acc, log)
			if update != nil {
				working = working.WithColumn(update)
			}
			if stop {
				halted = true
			}
		}

	case ir.ModeParallel:
		// Every job reads the same immutable base snapshot concurrently —
		// working is never mutated mid-group. Each job writes only to its
		// own localSink slot (indexed by its position in group.RuleIDs,
		// which is already precedence-then-id ordered); column updates are
		// likewise collected per-slot. Both are merged back onto the
		// accumulator/working table in that fixed slot order only after
		// pool.run returns, so the group's contribution to every result
		// stream is deterministic regardless of goroutine completion order
		// (spec §4.3.5: "result collation re-orders to precedence-then-id").
		base := working
		sinks := make([]*localSink, len(group.RuleIDs))
		updates := make([]*table.Column, len(group.RuleIDs))
		stops := make([]bool, len(group.RuleIDs))
		jobs := make([]ruleJob, 0, len(group.RuleIDs))
		for slot, id := range group.RuleIDs {
			slot, id := slot, id
			sinks[slot] = &localSink{}
			jobs = append(jobs, func(jobCtx context.Context) error {
				rule := ruleset.Rules[id]
				if !rule.Enabled {
					return nil
				}
				mask := buildRowWiseMask(rule, base, cache, acc)
				update, stop := applyRuleResults(rule, base, mask, sinks[slot], log)
				updates[slot] = update
				stops[slot] = stop
				return jobCtx.Err()
			})
		}
		if err := pool.run(ctx, jobs); err != nil {
			return working, halted, err
		}
		for slot := range group.RuleIDs {
			sinks[slot].flushInto(acc)
			if updates[slot] != nil {
				working = working.WithColumn(updates[slot])
			}
			if stops[slot] {
				halted = true
			}
		}

	default: // ModeSequential
		for _, id := range group.RuleIDs {
			rule := ruleset.Rules[id]
			if !rule.Enabled {
				continue
			}
			mask := buildRowWiseMask(rule, working, cache, acc)
			update, stop := applyRuleResults(rule, working, mask, acc, log)
			if update != nil {
				working = working.WithColumn(update)
			}
			if stop {
				halted = true
				break
			}
		}
	}

	groupLog.WithField("rows_affected", working.RowCount()).Debug("rule group completed")
	return working, halted, nil
}

// buildRowWiseMask evaluates rule's condition one row at a time, consulting
// cache first for each (rule, row) pair — the row-wise path is the one
// exercised repeatedly across overlapping rule groups, so memoizing here is
// where the cache actually pays for itself (spec §9 condition-result
// cache).
func buildRowWiseMask(rule *ir.CompiledRule, tbl *table.Table, cache *conditionCache, acc *accumulator) *table.BoolColumn {
	n := tbl.RowCount()
	mask := table.NewBoolColumn(n)
	for i := 0; i < n; i++ {
		if cached, ok := cache.get(rule.ID, i); ok {
			mask.Values[i] = cached
			acc.mu.Lock()
			acc.cacheHits++
			acc.mu.Unlock()
			continue
		}
		result := evaluateRow(rule.Condition, tbl, rule.Field, i)
		mask.Values[i] = result
		cache.put(rule.ID, i, result)
		acc.mu.Lock()
		acc.cacheMisses++
		acc.mu.Unlock()
	}
	return mask
}

// applyRuleResults walks mask's rows against the read-only base table and
// dispatches to the action executor for rule.Type. It never mutates base:
// a transform rule's changes are returned as a new Column for the caller
// to merge, which is what lets parallel-mode rule groups run every job
// against the same snapshot without synchronizing on the table itself.
// Returns the column update (nil if none) and whether a stop_on_error
// violation occurred.
func applyRuleResults(
	rule *ir.CompiledRule,
	base *table.Table,
	mask *table.BoolColumn,
	acc resultSink,
	log *logrus.Entry,
) (*table.Column, bool) {
	n := base.RowCount()
	stop := false

	switch rule.Type {
	case ir.TypeAssert:
		for i := 0; i < n; i++ {
			if v := runAssert(rule, base, i, mask.Values[i]); v != nil {
				acc.addViolation(v)
				if rule.Action.StopOnError {
					stop = true
				}
				// A column- or global-scoped assert reports at most one
				// violation, without a row index.
				if rule.Scope != ir.ScopeRow {
					break
				}
			}
		}

	case ir.TypeTransform:
		col, hasCol := base.Column(rule.Field)
		if !hasCol {
			return nil, false
		}
		values := append([]string(nil), col.Values...)
		null := append([]bool(nil), col.Null...)
		anyChanged := false
		for i := 0; i < n; i++ {
			t, newValue, did, unknownOp := runTransform(rule, base, i, mask.Values[i], log)
			if unknownOp {
				acc.addUnknownTransform()
			}
			if !did {
				continue
			}
			acc.addTransformation(t)
			values[i] = newValue
			null[i] = false
			anyChanged = true
		}
		if anyChanged {
			return table.NewColumn(rule.Field, values, null), false
		}

	case ir.TypeSuggest:
		for i := 0; i < n; i++ {
			if s := runSuggest(rule, base, i, mask.Values[i]); s != nil {
				acc.addSuggestion(s)
			}
		}
	}

	return nil, stop
}
