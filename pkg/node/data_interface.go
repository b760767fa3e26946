package node

import (
	"reflect"

	"github.com/anshdavid/computegraph/pkg/identifier"
)

// DataInterface holds one named, mutable value owned by a Node. It is the
// reactive layer's unit of state: sockets read and write through it, and
// operations read it as part of a Node's value snapshot.
type DataInterface struct {
	id       identifier.Identifier
	value    any
	onChange func(name string)
}

// newDataInterface builds a DataInterface. onChange is invoked, with the
// interface's name, whenever Update actually changes the stored value —
// this is how a value change reaches the owning Node's Evaluate chain
// without DataInterface importing Node.
func newDataInterface(name, uid string, initial any, onChange func(string)) *DataInterface {
	return &DataInterface{
		id:       identifier.New(name, uid),
		value:    initial,
		onChange: onChange,
	}
}

// Name returns the interface's name.
func (d *DataInterface) Name() string { return d.id.Name() }

// UID returns the interface's uid.
func (d *DataInterface) UID() string { return d.id.UID() }

// Get returns the interface's current value.
func (d *DataInterface) Get() any { return d.value }

// Set writes value directly, without triggering the owning Node's
// reactive Evaluate chain. Used to seed initial state.
func (d *DataInterface) Set(value any) { d.value = value }

// Update writes value only if it differs from the current value —
// reflect.DeepEqual stands in for the source's equality check, since Go's
// == operator panics on slice- or map-valued data rather than comparing
// them. On an actual change, it invokes the owning Node's Evaluate chain
// for this interface's name; this equality check is what allows a
// reactive cycle (A's socket feeds B's, B's feeds A's) to terminate
// instead of propagating forever.
func (d *DataInterface) Update(value any) {
	if reflect.DeepEqual(d.value, value) {
		return
	}
	d.value = value
	if d.onChange != nil {
		d.onChange(d.Name())
	}
}
