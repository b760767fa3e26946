package operation

import "errors"

// Sentinel errors for operation evaluation.
//
// ErrInvalidValue is the Go analogue of the source's ValueError: a function
// that rejects its own arguments (a bad numeric domain, an out-of-range
// index) should wrap this sentinel. Compute returns it with an empty result
// for the operation's outputs, same as any other failure; the network
// executor logs it at error level and other failures one level higher —
// the distinction only affects log severity (see Compute).
var (
	ErrInvalidValue       = errors.New("invalid value")
	ErrOutputArity        = errors.New("function result does not match declared outputs")
	ErrDuplicateSlotName  = errors.New("input and output slot names must be disjoint")
	ErrNilFunction        = errors.New("operation function must not be nil")
)
