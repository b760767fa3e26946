package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/anshdavid/computegraph/pkg/observer"
)

// TelemetryObserver implements observer.Observer and records telemetry data
// for network compile/call and step execution events.
type TelemetryObserver struct {
	provider *Provider

	// Track active spans for the current call and its steps
	callSpan  trace.Span
	stepSpans map[string]trace.Span

	callStartTime  time.Time
	stepStartTimes map[string]time.Time
}

// NewTelemetryObserver creates a new telemetry observer
func NewTelemetryObserver(provider *Provider) *TelemetryObserver {
	return &TelemetryObserver{
		provider:       provider,
		stepSpans:      make(map[string]trace.Span),
		stepStartTimes: make(map[string]time.Time),
	}
}

// OnEvent handles execution events and records telemetry data
func (o *TelemetryObserver) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventNetworkCompile:
		o.provider.RecordCompile(ctx, event.NetworkID, event.ElapsedTime)
	case observer.EventNetworkCall:
		if event.Status == observer.StatusStarted {
			o.handleCallStart(ctx, event)
		} else {
			o.handleCallEnd(ctx, event)
		}
	case observer.EventStepStart:
		o.handleStepStart(ctx, event)
	case observer.EventStepSuccess:
		o.handleStepEnd(ctx, event, true)
	case observer.EventStepFailure:
		o.handleStepEnd(ctx, event, false)
	case observer.EventCacheLookup:
		if hit, ok := event.Metadata["hit"].(bool); ok {
			o.provider.RecordCacheLookup(ctx, hit)
		}
	case observer.EventNodePropagate:
		o.provider.RecordNodePropagation(ctx, event.NodeID)
	}
}

func (o *TelemetryObserver) handleCallStart(ctx context.Context, event observer.Event) {
	_, span := o.provider.Tracer().Start(ctx, "network.call",
		trace.WithAttributes(
			attribute.String("network.id", event.NetworkID),
			attribute.String("call.id", event.CallID),
		),
	)
	o.callSpan = span
	o.callStartTime = event.Timestamp
}

func (o *TelemetryObserver) handleCallEnd(ctx context.Context, event observer.Event) {
	duration := event.ElapsedTime
	if duration == 0 && !o.callStartTime.IsZero() {
		duration = time.Since(o.callStartTime)
	}

	stepsExecuted := 0
	if val, ok := event.Metadata["steps_executed"]; ok {
		if count, ok := val.(int); ok {
			stepsExecuted = count
		}
	}

	success := event.Status == observer.StatusSuccess
	o.provider.RecordCall(ctx, event.NetworkID, duration, success, stepsExecuted)

	if o.callSpan != nil {
		if event.Error != nil {
			o.callSpan.RecordError(event.Error)
			o.callSpan.SetStatus(codes.Error, event.Error.Error())
		} else {
			o.callSpan.SetStatus(codes.Ok, "call completed successfully")
		}
		o.callSpan.End()
	}
}

func (o *TelemetryObserver) handleStepStart(ctx context.Context, event observer.Event) {
	var spanCtx context.Context
	if o.callSpan != nil {
		spanCtx = trace.ContextWithSpan(ctx, o.callSpan)
	} else {
		spanCtx = ctx
	}

	_, span := o.provider.Tracer().Start(spanCtx, "network.step",
		trace.WithAttributes(
			attribute.String("operation.uid", event.OperationUID),
			attribute.String("operation.name", event.OperationName),
			attribute.String("call.id", event.CallID),
		),
	)

	o.stepSpans[event.OperationUID] = span
	o.stepStartTimes[event.OperationUID] = event.Timestamp
}

func (o *TelemetryObserver) handleStepEnd(ctx context.Context, event observer.Event, success bool) {
	var duration time.Duration
	if startTime, ok := o.stepStartTimes[event.OperationUID]; ok {
		duration = time.Since(startTime)
		delete(o.stepStartTimes, event.OperationUID)
	}

	o.provider.RecordStep(ctx, event.OperationUID, duration, success)

	if span, ok := o.stepSpans[event.OperationUID]; ok {
		if event.Error != nil {
			span.RecordError(event.Error)
			span.SetStatus(codes.Error, event.Error.Error())
		} else {
			span.SetStatus(codes.Ok, "step completed successfully")
		}
		span.End()
		delete(o.stepSpans, event.OperationUID)
	}
}
