// Package graph implements the bipartite dependency structure the compute
// network compiles: Operation vertices and DataSlot vertices, wired by the
// edges DataSlot(i) -> Operation for each input i and Operation ->
// DataSlot(o) for each output o.
//
// # Topological Sort
//
// TopologicalSort implements Kahn's algorithm:
//  1. Compute in-degree for every vertex.
//  2. Seed a ring-buffer queue with all zero-in-degree vertices, sorted by
//     vertex id for determinism.
//  3. Dequeue, emit, decrement neighbor in-degrees, enqueue newly-ready
//     neighbors (again sorted).
//  4. If the emitted count is short of the vertex count, a cycle exists.
//
// # Ancestor Queries
//
// Ancestors(v) walks Predecessors transitively and is the primitive the
// network's requirement-pruning algorithm builds on (see pkg/network).
package graph
