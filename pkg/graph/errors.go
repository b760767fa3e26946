package graph

import "errors"

// Sentinel errors for graph operations. Both are returned (wrapped) from
// TopologicalSort when Kahn's algorithm stalls with vertices still unvisited.
var (
	// ErrCycleDetected is TopologicalSort's underlying cause: fewer vertices
	// were ordered than the graph contains, meaning some remain blocked on
	// each other.
	ErrCycleDetected = errors.New("cycle detected in graph")

	// ErrNotDAG is the condition TopologicalSort requires and failed to
	// find: the graph is not a directed acyclic graph.
	ErrNotDAG = errors.New("graph is not a DAG")
)
