// Package telemetry builds the process-level observability stack for the
// puzzle CLI: a zerolog logger, an OpenTelemetry tracer provider and a
// Prometheus HTTP endpoint.
package telemetry
