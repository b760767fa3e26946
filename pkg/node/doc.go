// Package node implements a reactive wiring layer: Nodes hold named
// DataInterfaces, Sockets bound to those interfaces, and Operations that
// read and write them. Writing a changed value through DataInterface.Update
// (or Socket.UpdateValue) triggers the owning Node's Evaluate chain, which
// recomputes dependent operations and propagates their results to any
// connected sockets — possibly on other Nodes — in a single depth-first
// reentrant call stack.
//
// This is the complement to package network: network compiles a static
// plan and dispatches it on demand, while node reacts to changes as they
// arrive and has no notion of a compiled plan at all.
//
// Basic usage:
//
//	n := node.New(config.Default())
//	n.AddData("a", false, "")
//	n.AddData("b", false, "")
//	n.AddData("out", false, "")
//	n.AddOperation("and", []string{"a", "b"}, []string{"out"}, andFn, nil, "")
//	n.SetValues(map[string]any{"a": true, "b": true})
//	n.Compute()
//	n.GetValues()["out"] // true
//
// Node, Socket, and DataInterface carry no internal locking. Their
// Evaluate/Execute/Propagate chain is reentrant by design — an Update that
// triggers Evaluate that triggers another Update on the same goroutine is
// the ordinary case, not a race — so a mutex here would either deadlock on
// that reentrant call or protect nothing, since callers are expected to
// drive a single Node (or a connected graph of Nodes) from one goroutine at
// a time. Concurrency across independent Nodes is the caller's concern.
package node
