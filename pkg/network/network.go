package network

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/anshdavid/computegraph/pkg/config"
	"github.com/anshdavid/computegraph/pkg/graph"
	"github.com/anshdavid/computegraph/pkg/identifier"
	"github.com/anshdavid/computegraph/pkg/logging"
	"github.com/anshdavid/computegraph/pkg/observer"
	"github.com/anshdavid/computegraph/pkg/operation"
)

// ComputeMethod selects how Call dispatches a specialized plan.
type ComputeMethod int

const (
	// Sequential runs plan steps one at a time on the calling goroutine.
	// This is the only method that actually computes a result today.
	Sequential ComputeMethod = iota
	// Parallel is a recognized value that Call rejects with
	// ErrUnsupportedMethod.
	Parallel
	// Distributed is a recognized value that Call rejects with
	// ErrUnsupportedMethod.
	Distributed
)

func (m ComputeMethod) String() string {
	switch m {
	case Parallel:
		return "parallel"
	case Distributed:
		return "distributed"
	default:
		return "sequential"
	}
}

// Network is a registry of Operations wired into a bipartite dependency
// graph, compiled into an ordered Plan, and callable with a subset of
// inputs and requested outputs. The zero value is not usable; build one
// with New.
type Network struct {
	id identifier.Identifier

	mu         sync.RWMutex
	operations map[string]*operation.Operation // uid -> operation
	graph      *graph.Graph

	compiled bool
	plan     []PlanStep

	reqCache     *requirementCache
	perfRegister map[string]time.Duration
	perfMu       sync.RWMutex

	cfg         *config.Config
	observerMgr *observer.Manager
	logger      *logging.Logger
}

// New creates an empty, uncompiled Network. cfg may be nil, in which case
// config.Default() is used.
func New(cfg *config.Config) *Network {
	if cfg == nil {
		cfg = config.Default()
	}

	id := identifier.New("network", "")
	return &Network{
		id:           id,
		operations:   make(map[string]*operation.Operation),
		graph:        graph.New(nil, nil),
		reqCache:     newRequirementCache(cfg.MaxRequirementCacheEntries),
		perfRegister: make(map[string]time.Duration),
		cfg:          cfg,
		observerMgr:  observer.NewManager(),
		logger:       logging.New(logging.DefaultConfig()).WithNetwork(id.UID()),
	}
}

// ID returns the network's identifier uid.
func (n *Network) ID() string { return n.id.UID() }

// RegisterObserver adds an observer to receive compile/call/step events.
// Returns the network for method chaining.
func (n *Network) RegisterObserver(obs observer.Observer) *Network {
	if obs != nil {
		n.observerMgr.Register(obs)
	}
	return n
}

// SetLogger replaces the network's structured logger.
// Returns the network for method chaining.
func (n *Network) SetLogger(logger *logging.Logger) *Network {
	if logger != nil {
		n.logger = logger.WithNetwork(n.id.UID())
	}
	return n
}

// Graph returns the network's underlying dependency graph, read-only.
func (n *Network) Graph() *graph.Graph {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.graph
}

// Compiled reports whether the network has a usable plan.
func (n *Network) Compiled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.compiled
}

// OrderedSteps returns a copy of the most recently compiled plan.
func (n *Network) OrderedSteps() []PlanStep {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]PlanStep(nil), n.plan...)
}

// PerfRegister returns a copy of the per-step timing register recorded by
// the most recent Call. Not safe to read concurrently with an in-flight
// Call — the source makes the same assumption about its perf_register.
func (n *Network) PerfRegister() map[string]time.Duration {
	n.perfMu.RLock()
	defer n.perfMu.RUnlock()
	out := make(map[string]time.Duration, len(n.perfRegister))
	for k, v := range n.perfRegister {
		out[k] = v
	}
	return out
}

// AddOperation registers an operation with the network, wiring a data-slot
// vertex for each of its inputs and outputs. Adding the same operation (by
// uid) twice is a logged no-op, matching the source's
// "operation can only be added once" behavior — it does not return an
// error, since the source treats it as a recoverable mistake, not a fault.
func (n *Network) AddOperation(op *operation.Operation) error {
	if op == nil {
		return ErrNilOperation
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.operations[op.UID()]; exists {
		n.logger.WithOperation(op.UID(), op.Name()).WithError(ErrDuplicateOperation).Error("operation can only be added once")
		return nil
	}

	if n.cfg.MaxOperations > 0 && len(n.operations) >= n.cfg.MaxOperations {
		return fmt.Errorf("%w: limit %d", ErrTooManyOperations, n.cfg.MaxOperations)
	}

	opVertex := graph.Op(op.UID())
	for _, name := range op.InputNames() {
		n.graph.AddEdge(graph.Slot(name), opVertex)
	}
	for _, name := range op.Outputs() {
		n.graph.AddEdge(opVertex, graph.Slot(name))
	}

	if n.cfg.MaxDataSlots > 0 && n.slotCountLocked() > n.cfg.MaxDataSlots {
		return fmt.Errorf("%w: limit %d", ErrTooManyDataSlots, n.cfg.MaxDataSlots)
	}

	n.operations[op.UID()] = op
	n.compiled = false
	return nil
}

// AddOperations registers each operation in order, stopping at the first
// error (other than the logged duplicate no-op, which never returns one).
func (n *Network) AddOperations(ops []*operation.Operation) error {
	for _, op := range ops {
		if err := n.AddOperation(op); err != nil {
			return err
		}
	}
	return nil
}

func (n *Network) slotCountLocked() int {
	count := 0
	for _, v := range n.graph.Vertices() {
		if v.Kind == graph.KindSlot {
			count++
		}
	}
	return count
}

// Compile computes a topological execution order over the network's
// operations and freezes it as the plan Call dispatches against. When
// optimize is true, a Discard step is inserted immediately after the last
// operation that still needs a given data slot, bounding that slot's
// residency in Call's cache to its liveness window.
//
// Compile clears any previously cached EvaluateComputationRequirements
// results, since they were computed against the old plan. A failed compile
// (a cycle, most commonly) leaves the network uncompiled with an empty
// plan.
func (n *Network) Compile(optimize bool) ([]PlanStep, error) {
	start := time.Now()

	n.mu.Lock()
	defer n.mu.Unlock()

	n.plan = nil
	n.reqCache.clear()
	n.compiled = false

	order, err := n.graph.TopologicalSort()
	if err != nil {
		n.logger.WithError(err).Error("failed to compile network")
		return nil, fmt.Errorf("%w: %v", ErrCompileFailed, err)
	}

	plan := make([]PlanStep, 0, len(order))
	for i, v := range order {
		switch v.Kind {
		case graph.KindSlot:
			continue

		case graph.KindOperation:
			op, ok := n.operations[v.Key]
			if !ok {
				return nil, fmt.Errorf("%w: unknown operation uid %q", ErrCompileFailed, v.Key)
			}
			plan = append(plan, opStep(op))

			if optimize {
				for _, pred := range n.graph.Predecessors(v) {
					if pred.Kind != graph.KindSlot {
						continue
					}
					if !n.slotNeededAfter(pred, order[i+1:]) {
						plan = append(plan, discardStep(pred.Key))
					}
				}
			}

		default:
			return nil, fmt.Errorf("%w: unhandled vertex kind %v", ErrCompileFailed, v.Kind)
		}
	}

	if n.cfg.MaxPlanSteps > 0 && len(plan) > n.cfg.MaxPlanSteps {
		return nil, fmt.Errorf("%w: %d steps, limit %d", ErrTooManyPlanSteps, len(plan), n.cfg.MaxPlanSteps)
	}

	n.plan = plan
	n.compiled = true

	n.observerMgr.Notify(context.Background(), observer.Event{
		Type:        observer.EventNetworkCompile,
		Status:      observer.StatusCompleted,
		Timestamp:   start,
		NetworkID:   n.id.UID(),
		StartTime:   start,
		ElapsedTime: time.Since(start),
	})

	return append([]PlanStep(nil), plan...), nil
}

// slotNeededAfter reports whether any later operation in topological order
// still consumes the given slot — the liveness check an optimize=true
// Compile uses to decide where to insert a Discard marker.
func (n *Network) slotNeededAfter(slot graph.Vertex, rest []graph.Vertex) bool {
	for _, v := range rest {
		if v.Kind != graph.KindOperation {
			continue
		}
		op, ok := n.operations[v.Key]
		if !ok {
			continue
		}
		for _, name := range op.InputNames() {
			if name == slot.Key {
				return true
			}
		}
	}
	return false
}

// EvaluateComputationRequirements computes which of the compiled plan's
// data slots Call actually needs to receive as input, plus a plan
// specialized to the requested subset of outputs. The result is memoized
// by canonicalized (sorted available, sorted requested) keys.
//
// The memoized entry is stored under the *computed* required-inputs key,
// not the caller's original available-inputs key — a faithful port of a
// deliberately surprising cache behavior from the source (see DESIGN.md).
func (n *Network) EvaluateComputationRequirements(available, requested []string) ([]string, []PlanStep, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.evaluateComputationRequirementsLocked(available, requested)
}

func (n *Network) evaluateComputationRequirementsLocked(available, requested []string) ([]string, []PlanStep, error) {
	sortedAvailable := sortedCopy(available)
	sortedRequested := sortedCopy(requested)

	lookupKey := newRequirementKey(sortedAvailable, sortedRequested)
	if cached, ok := n.reqCache.get(lookupKey); ok {
		n.notifyCacheLookup(true)
		return append([]string(nil), cached.requiredInputs...), append([]PlanStep(nil), cached.plan...), nil
	}
	n.notifyCacheLookup(false)

	removable := make(map[graph.Vertex]struct{})
	for _, name := range sortedAvailable {
		v := graph.Slot(name)
		if !n.graph.HasVertex(v) {
			n.logger.Warnf("graph has no data slot named %q", name)
			continue
		}
		for anc := range n.graph.Ancestors(v) {
			removable[anc] = struct{}{}
		}
	}

	needed := make(map[graph.Vertex]struct{})
	if len(sortedRequested) == 0 {
		for _, v := range n.graph.Vertices() {
			needed[v] = struct{}{}
		}
	} else {
		for _, name := range sortedRequested {
			v := graph.Slot(name)
			if !n.graph.HasVertex(v) {
				n.logger.Warnf("graph has no data slot named %q", name)
				continue
			}
			needed[v] = struct{}{}
			for anc := range n.graph.Ancestors(v) {
				needed[anc] = struct{}{}
			}
		}
	}

	for v := range removable {
		delete(needed, v)
	}

	specialized := make([]PlanStep, 0, len(n.plan))
	for _, step := range n.plan {
		if step.Kind != StepOperation {
			continue // discard markers never survive specialization
		}
		if _, ok := needed[graph.Op(step.Operation.UID())]; ok {
			specialized = append(specialized, step)
		}
	}

	requiredInputSet := make(map[string]struct{}, len(sortedAvailable))
	for _, step := range specialized {
		for _, in := range step.Operation.Inputs() {
			// Optional inputs fall back to the operation's constant Attrs
			// when absent, so an ancestor-free optional input is never a
			// hard requirement the way an ancestor-free required input is
			// (spec.md §8 Scenario F: calling without an optional "gain"
			// must succeed using its attrs default).
			if in.Optional {
				continue
			}
			if n.graph.InDegree(graph.Slot(in.Name)) == 0 {
				requiredInputSet[in.Name] = struct{}{}
			}
		}
	}
	for _, name := range sortedAvailable {
		requiredInputSet[name] = struct{}{}
	}

	requiredInputs := make([]string, 0, len(requiredInputSet))
	for name := range requiredInputSet {
		requiredInputs = append(requiredInputs, name)
	}
	sort.Strings(requiredInputs)

	storeKey := newRequirementKey(requiredInputs, sortedRequested)
	n.reqCache.add(storeKey, cachedRequirement{
		requiredInputs: append([]string(nil), requiredInputs...),
		plan:           append([]PlanStep(nil), specialized...),
	})

	return requiredInputs, specialized, nil
}

func (n *Network) notifyCacheLookup(hit bool) {
	if !n.observerMgr.HasObservers() {
		return
	}
	n.observerMgr.Notify(context.Background(), observer.Event{
		Type:      observer.EventCacheLookup,
		Status:    observer.StatusCompleted,
		Timestamp: time.Now(),
		NetworkID: n.id.UID(),
		Metadata:  map[string]interface{}{"hit": hit},
	})
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

// Call specializes the compiled plan against inputDict and outputs, then
// dispatches it for execution. Returns ErrNotCompiled if the network
// hasn't been compiled, ErrEmptyPlan if compilation produced no steps, and
// ErrMissingRequiredInputs if inputDict is missing a slot the specialized
// plan needs. Only method == Sequential actually computes anything; the
// other method values are recognized but report ErrUnsupportedMethod
// without running the plan.
func (n *Network) Call(ctx context.Context, inputDict map[string]any, outputs []string, method ComputeMethod) (map[string]any, error) {
	n.mu.Lock()
	if !n.compiled {
		n.mu.Unlock()
		n.logger.Error("graph not compiled")
		return nil, ErrNotCompiled
	}
	if len(n.plan) == 0 {
		n.mu.Unlock()
		n.logger.Error("no steps after compilation")
		return nil, ErrEmptyPlan
	}

	provided := make([]string, 0, len(inputDict))
	for k := range inputDict {
		provided = append(provided, k)
	}

	requiredInputs, steps, err := n.evaluateComputationRequirementsLocked(provided, outputs)
	n.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range requiredInputs {
		if _, ok := inputDict[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		n.logger.WithField("missing", missing).Error("missing required inputs")
		return nil, fmt.Errorf("%w: %v", ErrMissingRequiredInputs, missing)
	}

	if n.cfg.MaxCallTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.cfg.MaxCallTime)
		defer cancel()
	}

	callID := identifier.Generate()
	callLogger := n.logger.WithCall(callID)
	callStart := time.Now()

	n.observerMgr.Notify(ctx, observer.Event{
		Type:      observer.EventNetworkCall,
		Status:    observer.StatusStarted,
		Timestamp: callStart,
		NetworkID: n.id.UID(),
		CallID:    callID,
		StartTime: callStart,
	})

	n.resetPerfRegister()

	switch method {
	case Sequential:
		result, runErr := n.runSequential(ctx, callID, callLogger, inputDict, outputs, steps)
		n.notifyCallEnd(ctx, callID, callStart, len(steps), runErr)
		return result, runErr

	default:
		callLogger.Errorf("compute method %q not implemented", method)
		n.notifyCallEnd(ctx, callID, callStart, 0, ErrUnsupportedMethod)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
}

func (n *Network) notifyCallEnd(ctx context.Context, callID string, start time.Time, stepsExecuted int, err error) {
	status := observer.StatusSuccess
	if err != nil {
		status = observer.StatusFailure
	}
	n.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventNetworkCall,
		Status:      status,
		Timestamp:   time.Now(),
		NetworkID:   n.id.UID(),
		CallID:      callID,
		StartTime:   start,
		ElapsedTime: time.Since(start),
		Error:       err,
		Metadata:    map[string]interface{}{"steps_executed": stepsExecuted},
	})
}

func (n *Network) resetPerfRegister() {
	n.perfMu.Lock()
	defer n.perfMu.Unlock()
	n.perfRegister = make(map[string]time.Duration)
}

func (n *Network) recordStepTiming(name string, d time.Duration) {
	n.perfMu.Lock()
	defer n.perfMu.Unlock()
	n.perfRegister[name] = d
}
