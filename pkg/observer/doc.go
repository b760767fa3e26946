// Package observer provides an event-driven observer pattern for compute
// network execution.
//
// # Overview
//
// The observer package lets library consumers monitor network compilation
// and step execution without coupling to network or node internals.
// Observers are notified asynchronously, one goroutine per registered
// observer per event, and a panicking observer is recovered so it cannot
// take down the network or any other observer.
//
// # Basic Usage
//
//	mgr := observer.NewManager()
//	mgr.Register(observer.NewConsoleObserver())
//	mgr.Notify(ctx, observer.Event{
//	    Type:   observer.EventStepSuccess,
//	    Status: observer.StatusSuccess,
//	    CallID: callID,
//	})
//
// # Event Types
//
// Network-level: EventNetworkCompile, EventNetworkCall.
// Step-level (one operation run by a network Call or a node's Execute;
// discard steps emit no events):
// EventStepStart, EventStepEnd, EventStepSuccess, EventStepFailure.
// Node-level: EventNodePropagate.
package observer
