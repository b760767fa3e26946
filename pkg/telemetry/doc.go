// Package telemetry provides OpenTelemetry integration for distributed tracing and metrics.
// It enables comprehensive observability for compute network execution with support for:
//   - Distributed tracing with trace IDs and span context propagation
//   - Prometheus metrics for Call duration, step execution, and requirement-cache hit rate
//   - Custom metrics exporters and collectors
//   - Integration with industry-standard observability platforms
package telemetry
