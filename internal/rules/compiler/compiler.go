// Package compiler implements the rule-document compiler (C2 in
// SPEC_FULL.md): parsing, schema/id/operator validation, checksum
// computation, CCM mapping and rule-dependency resolution, execution-plan
// construction, and the final assembly of an ir.CompiledRuleSet (spec
// §4.2).
package compiler

import (
	"time"

	"github.com/sirupsen/logrus"

	"rules.evalgo.org/internal/rules/cfm"
	"rules.evalgo.org/internal/rules/ir"
)

// CompileOptions configures one Compile call (spec §4.2's CompileOptions).
type CompileOptions struct {
	// Model is the canonical field catalog ccm_mapping entries are
	// validated against. DefaultModel() is used when nil.
	Model *cfm.Model
	// ParallelBatchSize bounds how many rules a single parallel RuleGroup
	// may contain (resolved Open Question; default 4).
	ParallelBatchSize int
	// RegexCacheCapacity bounds the compiler's pattern-compilation cache
	// (spec §9; default 512).
	RegexCacheCapacity int
	// Logger receives structured diagnostics for each compile stage. A
	// disabled logger is used when nil.
	Logger *logrus.Logger
}

func (o CompileOptions) withDefaults() CompileOptions {
	if o.Model == nil {
		o.Model = cfm.DefaultModel()
	}
	if o.RegexCacheCapacity == 0 {
		o.RegexCacheCapacity = 512
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
		o.Logger.SetOutput(nilWriter{})
	}
	return o
}

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }

// compileCtx carries the shared, stateful collaborators used across one
// Compile call: the regex cache (so identical patterns across rules compile
// once) and the CFM model (for ccm_mapping validation).
type compileCtx struct {
	regexes  *regexCache
	cfmModel *cfm.Model
}

// Compile runs the full ten-step compile procedure (spec §4.2) over raw
// document bytes (YAML or JSON) and returns an immutable CompiledRuleSet.
func Compile(content []byte, opts CompileOptions) (*ir.CompiledRuleSet, error) {
	opts = opts.withDefaults()
	start := time.Now()
	log := opts.Logger.WithField("operation", "compile")

	doc, err := parseDocument(content)
	if err != nil {
		log.WithError(err).Warn("document parse failed")
		return nil, err
	}

	if err := validateDocumentShape(doc); err != nil {
		log.WithError(err).Warn("document schema validation failed")
		return nil, err
	}

	version, err := ir.ParseVersion(doc.Version)
	if err != nil {
		return nil, ir.NewCompilationError("invalid document version: %v", err)
	}

	sum := checksum(doc)

	ctx := &compileCtx{
		regexes:  newRegexCache(opts.RegexCacheCapacity),
		cfmModel: opts.Model,
	}

	ccmMapping, err := ctx.compileCCMMapping(doc.CCMMapping)
	if err != nil {
		return nil, err
	}

	rules := make(map[string]*ir.CompiledRule, len(doc.Rules))
	var order []string
	rulesByType := map[ir.RuleType]int{}
	rulesByField := map[string]int{}

	for _, entry := range doc.Rules {
		if _, dup := rules[entry.ID]; dup {
			return nil, ir.NewRuleCompilationError(entry.ID, "duplicate rule id")
		}
		compiled, err := ctx.compileRule(entry)
		if err != nil {
			log.WithError(err).WithField("rule_id", entry.ID).Warn("rule compilation failed")
			return nil, err
		}
		rules[entry.ID] = compiled
		order = append(order, entry.ID)
		rulesByType[compiled.Type]++
		rulesByField[compiled.Field]++
	}

	if err := checkRuleDependencyCycles(rules, order); err != nil {
		return nil, err
	}

	sortRulesByPrecedence(rules, order)

	plan := buildExecutionPlan(rules, order, opts.ParallelBatchSize)

	stats := ir.CompileStats{
		TotalRules:           len(order),
		RulesByType:          rulesByType,
		RulesByField:         rulesByField,
		ElapsedMs:            float64(time.Since(start).Microseconds()) / 1000.0,
		OptimizationsApplied: plan.Optimizations,
	}

	log.WithField("rule_count", stats.TotalRules).WithField("elapsed_ms", stats.ElapsedMs).Debug("compile complete")

	return &ir.CompiledRuleSet{
		SchemaVersion: doc.SchemaVersion,
		Marketplace:   doc.Marketplace,
		Version:       version,
		Checksum:      sum,
		CompiledAt:    time.Now(),
		CCMMapping:    ccmMapping,
		Rules:         rules,
		RuleOrder:     order,
		ExecutionPlan: plan,
		Compatibility: doc.Compatibility,
		Stats:         stats,
	}, nil
}

// Validate runs Compile and discards the result, reporting only whether the
// document is well-formed — the cmd/rulesctl `validate` subcommand's entry
// point.
func Validate(content []byte, opts CompileOptions) error {
	_, err := Compile(content, opts)
	return err
}

// sortRulesByPrecedence reorders `order` in place by ascending precedence
// (lower runs first), breaking ties by rule id — spec §4.2 step 7 ("iterate
// rules in precedence-then-id order"), §4.3.5, §5: ties are broken by id,
// never by document order.
func sortRulesByPrecedence(rules map[string]*ir.CompiledRule, order []string) {
	sortByPrecedenceThenID(order, func(id string) int { return rules[id].Precedence })
}

// sortByPrecedenceThenID insertion-sorts ids by (key(id), id) ascending.
func sortByPrecedenceThenID(ids []string, key func(string) int) {
	less := func(a, b string) bool {
		ka, kb := key(a), key(b)
		if ka != kb {
			return ka < kb
		}
		return a < b
	}
	for i := 1; i < len(ids); i++ {
		j := i
		for j > 0 && less(ids[j], ids[j-1]) {
			ids[j-1], ids[j] = ids[j], ids[j-1]
			j--
		}
	}
}

// checkRuleDependencyCycles builds a field-dependency graph across the
// transform rules (a rule that writes field A and depends on field B records
// that A depends on B) and rejects the document if they form a cycle, which
// would make the transformation phase unable to converge.
func checkRuleDependencyCycles(rules map[string]*ir.CompiledRule, order []string) error {
	graph := newDepGraph()
	for _, id := range order {
		rule := rules[id]
		if rule.Type != ir.TypeTransform {
			continue
		}
		graph.addNode(rule.Field)
		for dep := range rule.Dependencies {
			if dep != rule.Field {
				graph.addEdge(rule.Field, dep)
			}
		}
	}
	if err := graph.validate(); err != nil {
		return ir.NewCompilationError("rule field dependencies: %v", err)
	}
	return nil
}
