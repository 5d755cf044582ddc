package runtime

import "testing"

func TestConditionCache_PutThenGet(t *testing.T) {
	c := newConditionCache(4)
	c.put("rule_a", 0, true)
	got, ok := c.get("rule_a", 0)
	if !ok || !got {
		t.Fatalf("expected a cache hit with value true, got (%v, %v)", got, ok)
	}
}

func TestConditionCache_MissForUnknownKey(t *testing.T) {
	c := newConditionCache(4)
	if _, ok := c.get("rule_a", 0); ok {
		t.Error("expected a miss for an unpopulated key")
	}
}

func TestConditionCache_DefaultsCapacityWhenZero(t *testing.T) {
	c := newConditionCache(0)
	if c.inner == nil {
		t.Fatal("expected a non-nil inner cache")
	}
}
