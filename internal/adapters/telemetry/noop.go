package telemetry

import (
	"context"

	"go.trai.ch/portable/internal/core/ports"
)

// NoOpTracer satisfies ports.Tracer without recording anything.
// Builds run under it when no tracer is wired, for example in tests.
type NoOpTracer struct{}

// NewNoOpTracer returns a tracer that discards every span.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start returns ctx unchanged together with a span that discards everything.
func (t *NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

// EmitPlan drops the planned object references.
func (t *NoOpTracer) EmitPlan(context.Context, []string) {}

type noopSpan struct{}

func (noopSpan) End()                        {}
func (noopSpan) RecordError(error)           {}
func (noopSpan) SetAttribute(string, any)    {}
func (noopSpan) Write(p []byte) (int, error) { return len(p), nil }
