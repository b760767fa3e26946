// Package operation implements the pure-function declaration shared by the
// network and node facets: a named function with ordered input and output
// data slots, constant attributes, and optional inputs.
package operation

import (
	"fmt"

	"github.com/anshdavid/computegraph/pkg/identifier"
)

// Input names a single input slot and whether it is optional. An optional
// input is passed to Function by name only when present in the value map
// handed to Compute; it is never required for execution to proceed.
type Input struct {
	Name     string
	Optional bool
}

// Required builds a mandatory Input.
func Required(name string) Input { return Input{Name: name} }

// Optional builds an Input that Compute passes as a keyword argument only
// when the caller's value map contains it.
func Optional(name string) Input { return Input{Name: name, Optional: true} }

// Func is the shape every operation's function takes: positional arguments
// aligned with the operation's required (non-optional) inputs in
// declaration order, plus a kwargs map holding the operation's constant
// Attrs merged with whichever optional inputs were present in the call
// (nil when that merge is empty).
// This is the Go rendering of the source's `fn(*positional, **kwargs)`.
//
// Func returns a single value when the operation declares exactly one
// output, or a []any aligned positionally with Outputs when it declares
// more than one. Returning an error wrapping ErrInvalidValue gets logged at
// error level by the network executor (the source's ValueError case); any
// other error is logged there at a higher severity. Either way the operation's outputs
// resolve to an empty result for that step — Func failures never panic the
// caller.
type Func func(positional []any, kwargs map[string]any) (any, error)

// Operation is an immutable declaration of a pure function over named data
// slots. Inputs and Outputs may share no member.
type Operation struct {
	id      identifier.Identifier
	inputs  []Input
	outputs []string
	fn      Func
	attrs   map[string]any
}

// New builds an Operation. uid may be empty to get a generated one.
// Returns ErrDuplicateSlotName if an input name also appears among outputs,
// and ErrNilFunction if fn is nil.
func New(name, uid string, inputs []Input, outputs []string, fn Func, attrs map[string]any) (*Operation, error) {
	if fn == nil {
		return nil, ErrNilFunction
	}

	outputSet := make(map[string]struct{}, len(outputs))
	for _, o := range outputs {
		outputSet[o] = struct{}{}
	}
	for _, in := range inputs {
		if _, clash := outputSet[in.Name]; clash {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlotName, in.Name)
		}
	}

	if attrs == nil {
		attrs = map[string]any{}
	}

	return &Operation{
		id:      identifier.New(name, uid),
		inputs:  append([]Input(nil), inputs...),
		outputs: append([]string(nil), outputs...),
		fn:      fn,
		attrs:   attrs,
	}, nil
}

// Name returns the operation's name.
func (op *Operation) Name() string { return op.id.Name() }

// UID returns the operation's uid.
func (op *Operation) UID() string { return op.id.UID() }

// Inputs returns the ordered input specs.
func (op *Operation) Inputs() []Input { return op.inputs }

// InputNames returns just the names, in declaration order, of all inputs
// (required and optional alike) — this is the set the network wires edges
// from, since an unprovided optional input is still a potential dependency.
func (op *Operation) InputNames() []string {
	names := make([]string, len(op.inputs))
	for i, in := range op.inputs {
		names[i] = in.Name
	}
	return names
}

// Outputs returns the ordered output slot names.
func (op *Operation) Outputs() []string { return op.outputs }

// Attrs returns the operation's constant attribute map.
func (op *Operation) Attrs() map[string]any { return op.attrs }

func (op *Operation) String() string {
	return fmt.Sprintf("Operation(name:%q in:%v out:%v)", op.Name(), op.InputNames(), op.outputs)
}

// Compute evaluates the operation against a snapshot of available values.
// Positional arguments are taken from values in declared order, skipping
// optional inputs. Keyword arguments are Attrs unioned with whichever
// optional inputs are present in values; when that union is empty Func
// receives a nil kwargs map instead, mirroring the source's
// `fn(*a, **kw) if kw else fn(*a)` distinction (observable when Func
// rejects unexpected keys).
//
// If selected is non-nil, the result is filtered to that subset of
// Outputs; otherwise all outputs are returned.
//
// On error, Compute returns an empty map and the error unchanged for the
// caller to classify (errors.Is(err, ErrInvalidValue) vs anything else) and
// log at the appropriate severity — Compute itself never logs, since it
// has no logger dependency by design.
func (op *Operation) Compute(values map[string]any, selected map[string]struct{}) (map[string]any, error) {
	positional := make([]any, 0, len(op.inputs))
	kwargs := make(map[string]any, len(op.attrs))
	for k, v := range op.attrs {
		kwargs[k] = v
	}

	for _, in := range op.inputs {
		if in.Optional {
			if v, ok := values[in.Name]; ok {
				kwargs[in.Name] = v
			}
			continue
		}
		positional = append(positional, values[in.Name])
	}

	if len(kwargs) == 0 {
		kwargs = nil
	}

	result, err := op.fn(positional, kwargs)
	if err != nil {
		return map[string]any{}, err
	}

	var wrapped []any
	if len(op.outputs) == 1 {
		wrapped = []any{result}
	} else {
		list, ok := result.([]any)
		if !ok {
			return map[string]any{}, fmt.Errorf("%w: operation %q", ErrOutputArity, op.Name())
		}
		wrapped = list
	}

	out := make(map[string]any, len(op.outputs))
	for i, name := range op.outputs {
		if i >= len(wrapped) {
			break
		}
		if selected != nil {
			if _, want := selected[name]; !want {
				continue
			}
		}
		out[name] = wrapped[i]
	}
	return out, nil
}
