package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anshdavid/computegraph/pkg/logging"
	"github.com/anshdavid/computegraph/pkg/observer"
	"github.com/anshdavid/computegraph/pkg/operation"
)

// runSequential executes steps one at a time against a cache seeded from
// inputDict, merging each operation's outputs back into the cache as it
// runs. An operation that returns an error wrapping operation.ErrInvalidValue
// (the source's ValueError case) or any other error is logged; whether the
// run then continues or aborts is governed by cfg.StrictExecution. With
// StrictExecution false (the default, matching the source) the step's
// outputs are simply absent from the cache and the run continues. With
// StrictExecution true the run stops immediately and returns the partial
// cache alongside the wrapping error. ctx expiring past cfg.MaxCallTime
// stops the run the same way, with an error wrapping ErrCallTimeout. A
// missing data slot at a StepDataSlot entry is logged and also stops the
// run early, but returns the partial cache with a nil error.
//
// When outputs is empty the whole cache is returned; otherwise the result
// is filtered to that subset.
func (n *Network) runSequential(ctx context.Context, callID string, logger *logging.Logger, inputDict map[string]any, outputs []string, steps []PlanStep) (map[string]any, error) {
	cache := make(map[string]any, len(inputDict))
	for k, v := range inputDict {
		cache[k] = v
	}

	var runErr error

stepLoop:
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			logger.WithError(err).Error("call context ended before plan finished")
			runErr = fmt.Errorf("%w: %v", ErrCallTimeout, err)
			break stepLoop
		}

		switch step.Kind {
		case StepDataSlot:
			if _, ok := cache[step.SlotName]; !ok {
				logger.Errorf("missing data %q in processing stack", step.SlotName)
				break stepLoop
			}

		case StepOperation:
			if err := n.runOperationStep(ctx, callID, logger, cache, step.Operation); err != nil && n.cfg.StrictExecution {
				runErr = err
				break stepLoop
			}

		case StepDiscard:
			start := time.Now()
			delete(cache, step.SlotName)
			n.recordStepTiming(step.SlotName, time.Since(start))
		}
	}

	return filterResult(cache, outputs), runErr
}

// runOperationStep computes a single operation against the current cache
// snapshot and merges its outputs back in. Failures are logged (at error
// level when the function rejected its own arguments via
// operation.ErrInvalidValue, one level above error when it failed some
// other way) and
// the error is returned to the caller, which decides whether to absorb it
// (default) or abort the run (cfg.StrictExecution). A positive
// cfg.MaxStepTime bounds how long the operation itself is allowed to run,
// though Go funcs have no way to be preempted mid-call — the deadline is
// checked only after Compute returns, the same best-effort guarantee the
// source's own perf_register timing gives.
func (n *Network) runOperationStep(ctx context.Context, callID string, logger *logging.Logger, cache map[string]any, op *operation.Operation) error {
	start := time.Now()

	n.observerMgr.Notify(ctx, observer.Event{
		Type:          observer.EventStepStart,
		Status:        observer.StatusStarted,
		Timestamp:     start,
		NetworkID:     n.id.UID(),
		CallID:        callID,
		OperationUID:  op.UID(),
		OperationName: op.Name(),
		StartTime:     start,
	})

	out, err := op.Compute(cache, nil)
	elapsed := time.Since(start)
	n.recordStepTiming(op.Name(), elapsed)

	opLogger := logger.WithOperation(op.UID(), op.Name())

	if err == nil && n.cfg.MaxStepTime > 0 && elapsed > n.cfg.MaxStepTime {
		err = fmt.Errorf("%w: step took %s, limit %s", ErrStepTimeout, elapsed, n.cfg.MaxStepTime)
	}

	if err != nil {
		if errors.Is(err, operation.ErrInvalidValue) {
			opLogger.WithError(err).Error("operation rejected its arguments")
		} else {
			opLogger.WithError(err).GetSlogLogger().Log(ctx, slog.LevelError+4, "operation failed")
		}
		n.observerMgr.Notify(ctx, observer.Event{
			Type:          observer.EventStepFailure,
			Status:        observer.StatusFailure,
			Timestamp:     time.Now(),
			NetworkID:     n.id.UID(),
			CallID:        callID,
			OperationUID:  op.UID(),
			OperationName: op.Name(),
			StartTime:     start,
			ElapsedTime:   elapsed,
			Error:         err,
		})
		return err
	}

	for k, v := range out {
		cache[k] = v
	}

	n.observerMgr.Notify(ctx, observer.Event{
		Type:          observer.EventStepSuccess,
		Status:        observer.StatusSuccess,
		Timestamp:     time.Now(),
		NetworkID:     n.id.UID(),
		CallID:        callID,
		OperationUID:  op.UID(),
		OperationName: op.Name(),
		StartTime:     start,
		ElapsedTime:   elapsed,
		Result:        out,
	})
	return nil
}

func filterResult(cache map[string]any, outputs []string) map[string]any {
	if len(outputs) == 0 {
		return cache
	}

	want := make(map[string]struct{}, len(outputs))
	for _, name := range outputs {
		want[name] = struct{}{}
	}

	result := make(map[string]any, len(outputs))
	for k, v := range cache {
		if _, ok := want[k]; ok {
			result[k] = v
		}
	}
	return result
}
