package network

import "github.com/anshdavid/computegraph/pkg/operation"

// StepKind discriminates the three kinds of entries a compiled Plan can
// hold. A data-slot step never appears in a plan Compile produces today —
// Compile only ever emits StepOperation and, when optimizing, StepDiscard —
// but the sequential executor still understands StepDataSlot, a direct port
// of a defensive branch in the source that is unreachable for the same
// reason there.
type StepKind int

const (
	StepOperation StepKind = iota
	StepDataSlot
	StepDiscard
)

func (k StepKind) String() string {
	switch k {
	case StepOperation:
		return "operation"
	case StepDataSlot:
		return "data_slot"
	case StepDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// PlanStep is one entry of a compiled, ordered execution plan.
type PlanStep struct {
	Kind      StepKind
	Operation *operation.Operation // set when Kind == StepOperation
	SlotName  string               // set when Kind == StepDataSlot or StepDiscard
}

func opStep(op *operation.Operation) PlanStep {
	return PlanStep{Kind: StepOperation, Operation: op}
}

func slotStep(name string) PlanStep {
	return PlanStep{Kind: StepDataSlot, SlotName: name}
}

func discardStep(name string) PlanStep {
	return PlanStep{Kind: StepDiscard, SlotName: name}
}

func (s PlanStep) String() string {
	switch s.Kind {
	case StepOperation:
		return s.Operation.String()
	default:
		return s.Kind.String() + "(" + s.SlotName + ")"
	}
}
