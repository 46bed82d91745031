package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this instrumentation library to the tracer provider.
const tracerName = "buzznews"

// GetTracer returns a tracer bound to the currently installed provider.
// It is resolved on every call so spans always reach the active provider,
// even when the provider is swapped after package init.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
