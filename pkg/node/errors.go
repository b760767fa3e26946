package node

import "errors"

// Sentinel errors for node wiring operations. AddData, AddSocket, and
// AddOperation treat a naming collision as a fatal invariant violation (see
// their doc comments), so these are logged via Logger.WithError immediately
// before the panic rather than returned.
var (
	// ErrDuplicateInterface is logged when AddData is called with a name or
	// uid that already identifies an interface on the node.
	ErrDuplicateInterface = errors.New("duplicate data interface")

	// ErrDuplicateSocket is logged when AddSocket is called with a name or
	// uid that already identifies a socket on the node.
	ErrDuplicateSocket = errors.New("duplicate socket")

	// ErrDuplicateOperation is logged when AddOperation is called with a
	// name that already identifies an operation on the node.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrUnknownInterface is logged when AddOperation references an input
	// or output name with no matching registered interface, and when
	// SetValues/UpdateValues are given a name the node doesn't have.
	ErrUnknownInterface = errors.New("unknown data interface")
)
