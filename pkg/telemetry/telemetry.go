package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Service name for telemetry
	serviceName = "computegraph"

	// Metric names
	metricNetworkCalls        = "network.calls.total"
	metricNetworkCallDuration = "network.call.duration"
	metricNetworkCallSuccess  = "network.calls.success.total"
	metricNetworkCallFailure  = "network.calls.failure.total"
	metricCompileDuration     = "network.compile.duration"
	metricStepExecutions      = "network.step.executions.total"
	metricStepDuration        = "network.step.duration"
	metricStepSuccess         = "network.step.executions.success.total"
	metricStepFailure         = "network.step.executions.failure.total"
	metricCacheHit            = "network.requirement_cache.hit.total"
	metricCacheMiss           = "network.requirement_cache.miss.total"
	metricNodePropagations    = "node.propagations.total"
)

// Provider manages OpenTelemetry setup and provides access to tracers and meters.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	// Metrics instruments
	networkCalls        metric.Int64Counter
	networkCallDuration metric.Float64Histogram
	networkCallSuccess  metric.Int64Counter
	networkCallFailure  metric.Int64Counter
	compileDuration     metric.Float64Histogram
	stepExecutions      metric.Int64Counter
	stepDuration        metric.Float64Histogram
	stepSuccess         metric.Int64Counter
	stepFailure         metric.Int64Counter
	cacheHit            metric.Int64Counter
	cacheMiss           metric.Int64Counter
	nodePropagations    metric.Int64Counter

	mu sync.RWMutex
}

// Config holds telemetry configuration
type Config struct {
	// ServiceName is the name of the service for telemetry
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Environment (e.g., "production", "staging", "development")
	Environment string

	// EnableTracing enables distributed tracing
	EnableTracing bool

	// EnableMetrics enables metrics collection
	EnableMetrics bool
}

// DefaultConfig returns default telemetry configuration
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a new telemetry provider with Prometheus metrics exporter.
// It initializes OpenTelemetry with the given configuration and returns a provider
// that can be used to create tracers and record metrics.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

// initMetrics initializes the metrics provider with Prometheus exporter
func (p *Provider) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	otel.SetMeterProvider(p.meterProvider)

	p.meter = p.meterProvider.Meter(serviceName)

	if err := p.createMetricInstruments(); err != nil {
		return fmt.Errorf("failed to create metric instruments: %w", err)
	}

	return nil
}

// initTracing initializes the tracing provider
func (p *Provider) initTracing() {
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

// createMetricInstruments creates all metric instruments
func (p *Provider) createMetricInstruments() error {
	var err error

	p.networkCalls, err = p.meter.Int64Counter(
		metricNetworkCalls,
		metric.WithDescription("Total number of Call invocations"),
	)
	if err != nil {
		return err
	}

	p.networkCallDuration, err = p.meter.Float64Histogram(
		metricNetworkCallDuration,
		metric.WithDescription("Call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.networkCallSuccess, err = p.meter.Int64Counter(
		metricNetworkCallSuccess,
		metric.WithDescription("Total number of successful Call invocations"),
	)
	if err != nil {
		return err
	}

	p.networkCallFailure, err = p.meter.Int64Counter(
		metricNetworkCallFailure,
		metric.WithDescription("Total number of failed Call invocations"),
	)
	if err != nil {
		return err
	}

	p.compileDuration, err = p.meter.Float64Histogram(
		metricCompileDuration,
		metric.WithDescription("Network compile duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.stepExecutions, err = p.meter.Int64Counter(
		metricStepExecutions,
		metric.WithDescription("Total number of plan step executions"),
	)
	if err != nil {
		return err
	}

	p.stepDuration, err = p.meter.Float64Histogram(
		metricStepDuration,
		metric.WithDescription("Plan step execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.stepSuccess, err = p.meter.Int64Counter(
		metricStepSuccess,
		metric.WithDescription("Total number of successful plan step executions"),
	)
	if err != nil {
		return err
	}

	p.stepFailure, err = p.meter.Int64Counter(
		metricStepFailure,
		metric.WithDescription("Total number of failed plan step executions"),
	)
	if err != nil {
		return err
	}

	p.cacheHit, err = p.meter.Int64Counter(
		metricCacheHit,
		metric.WithDescription("Total number of requirement cache hits"),
	)
	if err != nil {
		return err
	}

	p.cacheMiss, err = p.meter.Int64Counter(
		metricCacheMiss,
		metric.WithDescription("Total number of requirement cache misses"),
	)
	if err != nil {
		return err
	}

	p.nodePropagations, err = p.meter.Int64Counter(
		metricNodePropagations,
		metric.WithDescription("Total number of socket value propagations"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer for creating spans
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordCall records metrics for a single Call invocation.
func (p *Provider) RecordCall(ctx context.Context, networkID string, duration time.Duration, success bool, stepsExecuted int) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("network.id", networkID),
		attribute.Int("steps.executed", stepsExecuted),
	}

	p.networkCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.networkCallDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if success {
		p.networkCallSuccess.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		p.networkCallFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordCompile records the duration of a single Compile invocation.
func (p *Provider) RecordCompile(ctx context.Context, networkID string, duration time.Duration) {
	if p.meter == nil {
		return
	}
	p.compileDuration.Record(ctx, float64(duration.Milliseconds()),
		metric.WithAttributes(attribute.String("network.id", networkID)))
}

// RecordStep records metrics for one executed operation step.
func (p *Provider) RecordStep(ctx context.Context, operationUID string, duration time.Duration, success bool) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation.uid", operationUID),
	}

	p.stepExecutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.stepDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if success {
		p.stepSuccess.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		p.stepFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordCacheLookup records a requirement-cache hit or miss.
func (p *Provider) RecordCacheLookup(ctx context.Context, hit bool) {
	if p.meter == nil {
		return
	}
	if hit {
		p.cacheHit.Add(ctx, 1)
	} else {
		p.cacheMiss.Add(ctx, 1)
	}
}

// RecordNodePropagation records one socket value propagation.
func (p *Provider) RecordNodePropagation(ctx context.Context, nodeID string) {
	if p.meter == nil {
		return
	}
	p.nodePropagations.Add(ctx, 1, metric.WithAttributes(attribute.String("node.id", nodeID)))
}

// Shutdown gracefully shuts down the telemetry provider
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}

	return nil
}
