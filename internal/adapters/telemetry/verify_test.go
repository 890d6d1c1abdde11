package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/portable/internal/adapters/telemetry"
	"go.trai.ch/portable/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
}

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracerWithProvider(tp, "test-tracer"), sr
}

func attrs(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestOTelTracer_Start(t *testing.T) {
	tracer := telemetry.NewOTelTracer("test-tracer")
	assert.NotNil(t, tracer)

	ctx := context.Background()
	_, span := tracer.Start(ctx, "test-span")
	assert.NotNil(t, span)

	span.SetAttribute("key", "value")
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.End()
}

func TestOTelTracer_RecordsAttributesAndPlan(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "resolving", ports.WithAttribute("case", "Case-Export"))
	tracer.EmitPlan(ctx, []string{"data_source:1", "file:10"})
	span.SetAttribute("objects", 2)
	span.SetAttribute("bytes.copied", int64(5))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	got := attrs(ended[0].Attributes())
	assert.Equal(t, "Case-Export", got["case"].AsString())
	assert.Equal(t, int64(2), got["objects"].AsInt64())
	assert.Equal(t, int64(5), got["bytes.copied"].AsInt64())

	events := ended[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
	assert.Equal(t, []string{"data_source:1", "file:10"}, attrs(events[0].Attributes)["objects"].AsStringSlice())
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "writing")
	span.RecordError(nil)
	span.RecordError(errors.New("file:10: failed to read source content"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "file:10: failed to read source content", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	assert.NotNil(t, tracer)

	ctx := context.Background()
	_, span := tracer.Start(ctx, "test-span")
	assert.NotNil(t, span)

	tracer.EmitPlan(ctx, []string{"file:1"})
	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.End()
}
