package compiler

import "testing"

func TestDepGraph_TopoOrderRespectsEdges(t *testing.T) {
	g := newDepGraph()
	g.addEdge("price_brl", "currency")
	g.addEdge("currency", "marketplace_default")
	g.addNode("marketplace_default")

	order, err := g.topoOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := map[string]int{}
	for i, n := range order {
		pos[n] = i
	}
	if pos["marketplace_default"] > pos["currency"] || pos["currency"] > pos["price_brl"] {
		t.Errorf("expected dependency order, got %v", order)
	}
}

func TestDepGraph_DetectsCycle(t *testing.T) {
	g := newDepGraph()
	g.addEdge("a", "b")
	g.addEdge("b", "c")
	g.addEdge("c", "a")

	if err := g.validate(); err == nil {
		t.Fatal("expected a cycle to be detected")
	}
	if _, err := g.topoOrder(); err == nil {
		t.Fatal("expected topoOrder to fail on a cyclic graph")
	}
}

func TestDepGraph_EmptyGraphProducesEmptyOrder(t *testing.T) {
	g := newDepGraph()
	order, err := g.topoOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected an empty order, got %v", order)
	}
}
