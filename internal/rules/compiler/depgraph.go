package compiler

import "fmt"

// depGraph is a directed graph over string node names, adapted from the
// teacher's graph/dag.go (workflow-step dependency validation) and
// repurposed here for two compile-time concerns: ordering `ccm_mapping`
// entries so a field's default/transform never runs before a field it
// depends on, and checking that a rule's declared condition fields don't
// form a transform cycle (spec §4.2 step 6 "analyze dependencies").
type depGraph struct {
	nodes map[string]bool
	edges map[string][]string // node -> nodes it depends on
}

func newDepGraph() *depGraph {
	return &depGraph{nodes: map[string]bool{}, edges: map[string][]string{}}
}

func (g *depGraph) addNode(name string) {
	g.nodes[name] = true
	if g.edges[name] == nil {
		g.edges[name] = nil
	}
}

// addEdge records that `from` depends on `to` (to must run/resolve first).
func (g *depGraph) addEdge(from, to string) {
	g.addNode(from)
	g.addNode(to)
	g.edges[from] = append(g.edges[from], to)
}

// validate runs depth-first cycle detection, mirroring
// graph.ValidateDAG/checkCycleRecursive.
func (g *depGraph) validate() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.nodes))
	var path []string

	var visit func(node string) error
	visit = func(node string) error {
		color[node] = gray
		path = append(path, node)
		for _, dep := range g.edges[node] {
			switch color[dep] {
			case gray:
				return fmt.Errorf("dependency cycle detected: %s -> %s", node, dep)
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		color[node] = black
		return nil
	}

	for node := range g.nodes {
		if color[node] == white {
			if err := visit(node); err != nil {
				return err
			}
		}
	}
	return nil
}

// topoOrder returns nodes in dependency-first order (a node's dependencies
// precede it) using Kahn's algorithm, mirroring
// graph.GetExecutionOrder. Ties are broken by node name, for determinism.
func (g *depGraph) topoOrder() ([]string, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	inDegree := make(map[string]int, len(g.nodes))
	var insertOrder []string
	for node := range g.nodes {
		insertOrder = append(insertOrder, node)
	}
	// deterministic seed order: sort by name since map iteration is random
	insertOrder = sortedCopy(insertOrder)

	// Build reverse adjacency: dependency -> dependents, and in-degree as
	// count of unresolved dependencies per node.
	dependents := make(map[string][]string, len(g.nodes))
	for node, deps := range g.edges {
		inDegree[node] = len(deps)
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], node)
		}
	}

	var queue []string
	for _, node := range insertOrder {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var order []string
	for len(queue) > 0 {
		queue = sortedCopy(queue)
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)
		for _, next := range dependents[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("dependency cycle detected while computing topological order")
	}
	return order, nil
}

func sortedCopy(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
