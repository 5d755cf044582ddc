// Package runtime implements the rule execution engine (C3 in
// SPEC_FULL.md): vectorized and row-wise condition evaluation, the
// transform kernel library, the bounded worker pool for parallel rule
// groups, and the phase/group dispatcher that turns an ir.CompiledRuleSet
// plus a table.Table into an ir.ExecutionResult (spec §4.3).
package runtime

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// conditionCacheKey identifies one (rule, row) condition evaluation.
// Identical keys always produce identical results because conditions are
// pure functions of a row's column values, which is what makes this cache
// safe (spec §9 "bounded condition-result cache").
type conditionCacheKey struct {
	RuleID string
	Row    int
}

// conditionCache memoizes condition evaluation results across rule groups,
// keyed by (rule, row). Default capacity 1024, an LRU eviction policy via
// hashicorp/golang-lru (adopted cross-pack from gloudx-ues, which uses the
// same library for its own registry lookup cache).
type conditionCache struct {
	inner *lru.Cache[conditionCacheKey, bool]
}

func newConditionCache(capacity int) *conditionCache {
	if capacity <= 0 {
		capacity = 1024
	}
	c, err := lru.New[conditionCacheKey, bool](capacity)
	if err != nil {
		// Only returns an error for a non-positive size, which the guard
		// above already excludes.
		panic(err)
	}
	return &conditionCache{inner: c}
}

func (c *conditionCache) get(ruleID string, row int) (bool, bool) {
	return c.inner.Get(conditionCacheKey{RuleID: ruleID, Row: row})
}

func (c *conditionCache) put(ruleID string, row int, result bool) {
	c.inner.Add(conditionCacheKey{RuleID: ruleID, Row: row}, result)
}

func (c *conditionCache) len() int {
	return c.inner.Len()
}
