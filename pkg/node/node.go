package node

import (
	"context"
	"time"

	"github.com/anshdavid/computegraph/pkg/config"
	"github.com/anshdavid/computegraph/pkg/identifier"
	"github.com/anshdavid/computegraph/pkg/logging"
	"github.com/anshdavid/computegraph/pkg/observer"
	"github.com/anshdavid/computegraph/pkg/operation"
)

// Node owns a set of named DataInterfaces, Sockets wired to them, and
// Operations that read and write those interfaces. It is the reactive
// counterpart to Network: instead of a compiled plan dispatched on
// demand, a Node reacts to value changes as they happen.
//
// Node is not safe for concurrent use. Its Evaluate/Execute/Propagate
// chain is a single, depth-first reentrant call stack — an Update that
// triggers Evaluate that triggers another Update is the normal case, not
// a bug — and adding locking around that chain would either deadlock on
// the reentrant call or serialize nothing useful, since there is only
// ever one logical caller at a time.
type Node struct {
	id identifier.Identifier

	interfaces map[string]*DataInterface
	sockets    map[string]*Socket
	operations []*operation.Operation

	cfg         *config.Config
	observerMgr *observer.Manager
	logger      *logging.Logger
}

// New creates an empty Node. cfg may be nil, in which case config.Default()
// is used.
func New(cfg *config.Config) *Node {
	if cfg == nil {
		cfg = config.Default()
	}

	id := identifier.New("node", "")
	return &Node{
		id:          id,
		interfaces:  make(map[string]*DataInterface),
		sockets:     make(map[string]*Socket),
		cfg:         cfg,
		observerMgr: observer.NewManager(),
		logger:      logging.New(logging.DefaultConfig()).WithNode(id.UID()),
	}
}

// ID returns the node's identifier uid.
func (n *Node) ID() string { return n.id.UID() }

// RegisterObserver adds an observer to receive this node's step and
// propagation events. Returns the node for method chaining.
func (n *Node) RegisterObserver(obs observer.Observer) *Node {
	if obs != nil {
		n.observerMgr.Register(obs)
	}
	return n
}

// SetLogger replaces the node's structured logger.
// Returns the node for method chaining.
func (n *Node) SetLogger(logger *logging.Logger) *Node {
	if logger != nil {
		n.logger = logger.WithNode(n.id.UID())
	}
	return n
}

// GetSocketByName returns the named socket, or false if none exists.
func (n *Node) GetSocketByName(name string) (*Socket, bool) {
	s, ok := n.sockets[name]
	return s, ok
}

// GetInterfaceByName returns the named data interface, or false if none
// exists.
func (n *Node) GetInterfaceByName(name string) (*DataInterface, bool) {
	i, ok := n.interfaces[name]
	return i, ok
}

// AddData registers a new data interface holding initial. A duplicate
// name or uid is a fatal invariant violation — a node's interfaces are its
// addressable wiring surface, and two interfaces sharing an address would
// make every later lookup ambiguous — so this logs and panics via the
// structured logger rather than returning an error.
func (n *Node) AddData(name string, initial any, uid string) *DataInterface {
	if _, exists := n.interfaces[name]; exists {
		n.logger.WithError(ErrDuplicateInterface).Fatalf("interface with name %q already exists in node %q", name, n.id.Name())
	}
	if uid != "" {
		for _, iface := range n.interfaces {
			if iface.UID() == uid {
				n.logger.WithError(ErrDuplicateInterface).Fatalf("interface with uid %q already exists in node %q", uid, n.id.Name())
			}
		}
	}

	iface := newDataInterface(name, uid, initial, n.Evaluate)
	n.interfaces[name] = iface
	return iface
}

// AddSocket registers a new socket of the given direction. A duplicate
// name or uid is a fatal invariant violation, for the same reason as
// AddData.
func (n *Node) AddSocket(name string, direction Direction, uid string) *Socket {
	if _, exists := n.sockets[name]; exists {
		n.logger.WithError(ErrDuplicateSocket).Fatalf("socket with name %q already exists in node %q", name, n.id.Name())
	}
	if uid != "" {
		for _, s := range n.sockets {
			if s.UID() == uid {
				n.logger.WithError(ErrDuplicateSocket).Fatalf("socket with uid %q already exists in node %q", uid, n.id.Name())
			}
		}
	}

	socket := newSocket(name, uid, direction, n.logger, n.notifyPropagate)
	n.sockets[name] = socket
	return socket
}

// AddOperation registers a pure function over this node's data interfaces.
// Every name in inputs and outputs must already be a registered interface;
// an unknown name, or a duplicate operation name, is a fatal invariant
// violation for the same reason as AddData/AddSocket.
func (n *Node) AddOperation(name string, inputs, outputs []string, fn operation.Func, attrs map[string]any, uid string) *operation.Operation {
	for _, op := range n.operations {
		if op.Name() == name {
			n.logger.WithError(ErrDuplicateOperation).Fatalf("operation with name %q already exists in node %q", name, n.id.Name())
		}
	}

	for _, in := range inputs {
		if _, ok := n.interfaces[in]; !ok {
			n.logger.WithError(ErrUnknownInterface).Fatalf("operation input %q not available in node %q", in, n.id.Name())
		}
	}
	for _, out := range outputs {
		if _, ok := n.interfaces[out]; !ok {
			n.logger.WithError(ErrUnknownInterface).Fatalf("operation output %q not available in node %q", out, n.id.Name())
		}
	}

	requiredInputs := make([]operation.Input, len(inputs))
	for i, in := range inputs {
		requiredInputs[i] = operation.Required(in)
	}

	op, err := operation.New(name, uid, requiredInputs, outputs, fn, attrs)
	if err != nil {
		n.logger.Fatalf("failed to build operation %q: %v", name, err)
	}

	n.operations = append(n.operations, op)
	return op
}

// GetValues returns a snapshot of every interface's current value, keyed
// by interface name.
func (n *Node) GetValues() map[string]any {
	out := make(map[string]any, len(n.interfaces))
	for name, iface := range n.interfaces {
		out[name] = iface.Get()
	}
	return out
}

// SetValues writes values directly, without triggering Evaluate. An
// unknown interface name is logged and skipped; the rest of the batch
// still applies.
func (n *Node) SetValues(values map[string]any) {
	for name, value := range values {
		iface, ok := n.interfaces[name]
		if !ok {
			n.logger.WithError(ErrUnknownInterface).Errorf("cannot set interface %q value, not found in node %q", name, n.id.Name())
			continue
		}
		iface.Set(value)
	}
}

// UpdateValues writes values through Update, triggering Evaluate for each
// interface whose value actually changes. An unknown interface name is
// logged and skipped; the rest of the batch still applies.
func (n *Node) UpdateValues(values map[string]any) {
	for name, value := range values {
		iface, ok := n.interfaces[name]
		if !ok {
			n.logger.WithError(ErrUnknownInterface).Errorf("cannot update interface %q value, not found in node %q", name, n.id.Name())
			continue
		}
		iface.Update(value)
	}
}

// Evaluate runs every operation that reads interfaceName, then propagates
// every output socket's current value to its connected peers. It is the
// reactive chain's entry point: DataInterface.Update calls this whenever
// it actually changes a value.
func (n *Node) Evaluate(interfaceName string) {
	for _, op := range n.operations {
		for _, in := range op.InputNames() {
			if in == interfaceName {
				n.Execute(op)
				break
			}
		}
	}
	n.Propagate()
}

// Compute runs every operation unconditionally, then propagates. Unlike
// Evaluate, it doesn't filter by which interface changed — useful to force
// a node's outputs up to date after a batch of SetValues calls, which
// write without triggering Evaluate.
func (n *Node) Compute() {
	for _, op := range n.operations {
		n.Execute(op)
	}
	n.Propagate()
}

// Execute runs one operation against a snapshot of the node's current
// values and writes the result back through UpdateValues — so an output
// that actually changes re-triggers Evaluate for its own name, same as
// any other value change. An operation error is logged and absorbed: the
// node's values are simply left as they were.
func (n *Node) Execute(op *operation.Operation) {
	start := time.Now()

	if n.observerMgr.HasObservers() {
		n.observerMgr.Notify(context.Background(), observer.Event{
			Type: observer.EventStepStart, Status: observer.StatusStarted, Timestamp: start,
			NodeID: n.id.UID(), OperationUID: op.UID(), OperationName: op.Name(), StartTime: start,
		})
	}

	result, err := op.Compute(n.GetValues(), nil)
	elapsed := time.Since(start)

	if err != nil {
		n.logger.WithOperation(op.UID(), op.Name()).WithError(err).Error("node operation failed")
		if n.observerMgr.HasObservers() {
			n.observerMgr.Notify(context.Background(), observer.Event{
				Type: observer.EventStepFailure, Status: observer.StatusFailure, Timestamp: time.Now(),
				NodeID: n.id.UID(), OperationUID: op.UID(), OperationName: op.Name(),
				StartTime: start, ElapsedTime: elapsed, Error: err,
			})
		}
		return
	}

	if n.observerMgr.HasObservers() {
		n.observerMgr.Notify(context.Background(), observer.Event{
			Type: observer.EventStepSuccess, Status: observer.StatusSuccess, Timestamp: time.Now(),
			NodeID: n.id.UID(), OperationUID: op.UID(), OperationName: op.Name(),
			StartTime: start, ElapsedTime: elapsed, Result: result,
		})
	}

	n.UpdateValues(result)
}

// Propagate pushes every output socket's bound value to its connected
// peers.
func (n *Node) Propagate() {
	for _, s := range n.sockets {
		if s.Direction() == Output {
			s.Propagate()
		}
	}
}

func (n *Node) notifyPropagate(targetSocketName string) {
	if !n.observerMgr.HasObservers() {
		return
	}
	n.observerMgr.Notify(context.Background(), observer.Event{
		Type:      observer.EventNodePropagate,
		Status:    observer.StatusCompleted,
		Timestamp: time.Now(),
		NodeID:    n.id.UID(),
		Metadata:  map[string]interface{}{"target_socket": targetSocketName},
	})
}
