package domain

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Node is one object of the dependency graph together with the refs it requires.
// An edge A -> B (B in A.Dependencies) means B must exist in the destination for A to be meaningful.
type Node struct {
	Ref          SourceObjectRef
	Object       Object
	Dependencies []SourceObjectRef
}

// Graph is the dependency graph of objects that must be written to a portable case.
type Graph struct {
	nodes          map[SourceObjectRef]Node
	dependents     map[SourceObjectRef][]SourceObjectRef
	executionOrder []SourceObjectRef
	unresolved     []ObjectError
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[SourceObjectRef]Node),
		dependents: make(map[SourceObjectRef][]SourceObjectRef),
	}
}

// AddNode adds a node to the graph.
// It returns an error if a node with the same ref already exists.
func (g *Graph) AddNode(n Node) error {
	if _, exists := g.nodes[n.Ref]; exists {
		return Annotate(ErrNodeAlreadyExists, "ref", n.Ref.String())
	}
	g.nodes[n.Ref] = n
	for _, dep := range n.Dependencies {
		g.dependents[dep] = append(g.dependents[dep], n.Ref)
	}
	g.executionOrder = nil
	return nil
}

// AddUnresolved records an object that was dropped because a dependency could not be located.
func (g *Graph) AddUnresolved(e ObjectError) {
	g.unresolved = append(g.unresolved, e)
}

// Unresolved returns the objects dropped during resolution.
func (g *Graph) Unresolved() []ObjectError {
	return g.unresolved
}

// Node returns the node for a ref.
func (g *Graph) Node(ref SourceObjectRef) (Node, bool) {
	n, ok := g.nodes[ref]
	return n, ok
}

// Has reports whether the ref is part of the graph.
func (g *Graph) Has(ref SourceObjectRef) bool {
	_, ok := g.nodes[ref]
	return ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Dependents returns the refs of nodes that directly depend on ref.
func (g *Graph) Dependents(ref SourceObjectRef) []SourceObjectRef {
	return g.dependents[ref]
}

// Refs returns every ref in the graph in canonical order.
func (g *Graph) Refs() []SourceObjectRef {
	return slices.SortedFunc(maps.Keys(g.nodes), CompareRefs)
}

// Validate checks for cycles and missing dependencies using a topological sort.
// It populates the execution order if successful. Nodes are visited in canonical
// ref order so the walk is deterministic for a given graph.
func (g *Graph) Validate() error {
	g.executionOrder = make([]SourceObjectRef, 0, len(g.nodes))
	visited := make(map[SourceObjectRef]int, len(g.nodes)) // 0: unvisited, 1: visiting, 2: visited
	var path []SourceObjectRef

	var visit func(u SourceObjectRef) error
	visit = func(u SourceObjectRef) error {
		visited[u] = 1
		path = append(path, u)

		node, exists := g.nodes[u]
		if !exists {
			return Annotate(ErrMissingDependency, "dependency", u.String())
		}

		deps := slices.Clone(node.Dependencies)
		slices.SortFunc(deps, CompareRefs)
		for _, dep := range deps {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, ref := range g.Refs() {
		if visited[ref] == 0 {
			if err := visit(ref); err != nil {
				g.executionOrder = nil
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []SourceObjectRef, dep SourceObjectRef) error {
	startIdx := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, ref := range path[startIdx:] {
		parts = append(parts, ref.String())
	}
	parts = append(parts, dep.String())
	return Annotate(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator that yields nodes in dependency order:
// every node is yielded after all of its dependencies.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, ref := range g.executionOrder {
			if !yield(g.nodes[ref]) {
				return
			}
		}
	}
}

// Closure returns the transitive dependencies of ref, ref included.
func (g *Graph) Closure(ref SourceObjectRef) []SourceObjectRef {
	seen := map[SourceObjectRef]bool{ref: true}
	queue := []SourceObjectRef{ref}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range g.nodes[cur].Dependencies {
			if !seen[dep] {
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	return slices.SortedFunc(maps.Keys(seen), CompareRefs)
}
