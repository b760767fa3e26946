// Package network implements the compute network: a registry of Operations
// wired into a bipartite dependency graph (pkg/graph), compiled into an
// ordered plan, and callable with a subset of inputs and requested outputs.
//
// # Basic Usage
//
//	net := network.New(config.Default())
//	net.AddOperation(sub)
//	net.AddOperation(mul)
//	if _, err := net.Compile(false); err != nil {
//	    log.Fatal(err)
//	}
//	out, err := net.Call(context.Background(), map[string]any{"a": 1.0, "b": 2.0}, nil, network.Sequential)
//
// # Compile and Call
//
// Compile topologically sorts the operation/data-slot graph into a Plan.
// Call specializes that plan against the inputs actually provided and the
// outputs actually requested — via EvaluateComputationRequirements — before
// dispatching the reduced plan to an executor. Only Sequential dispatch is
// implemented; Parallel and Distributed are recognized method values that
// report ErrUnsupportedMethod without running the plan.
package network
