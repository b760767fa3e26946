package network

import "errors"

// Sentinel errors returned by Network. Most failures inside a Call are
// logged and absorbed so a partial result can still come back to the
// caller — these sentinels cover only the pre-flight checks and
// unrecoverable network states from the compile/call contract.
var (
	ErrNilOperation          = errors.New("operation must not be nil")
	ErrDuplicateOperation    = errors.New("operation can only be added once")
	ErrTooManyOperations     = errors.New("network operation limit exceeded")
	ErrTooManyDataSlots      = errors.New("network data slot limit exceeded")
	ErrTooManyPlanSteps      = errors.New("compiled plan exceeds step limit")
	ErrCompileFailed         = errors.New("failed to compile network")
	ErrNotCompiled           = errors.New("network not compiled")
	ErrEmptyPlan             = errors.New("no steps after compilation")
	ErrMissingRequiredInputs = errors.New("missing required inputs")
	ErrUnsupportedMethod     = errors.New("compute method not implemented")
	ErrCallTimeout           = errors.New("call exceeded configured time budget")
	ErrStepTimeout           = errors.New("step exceeded configured time budget")
)
