package emit

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (*tracetest.InMemoryExporter, *OTelEmitter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter, NewOTelEmitter(otel.Tracer("test"))
}

func TestOTelEmitter_Emit(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	emitter.Emit(Event{
		RunID: "run-001",
		Step:  4,
		Node:  9,
		Msg:   "node_expanded",
		Meta: map[string]interface{}{
			"g":         3.0,
			"frontier":  12,
			"algorithm": "astar",
			"custom":    "value",
		},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]

	if span.Name != "node_expanded" {
		t.Errorf("span name = %q, want %q", span.Name, "node_expanded")
	}

	attrs := attributeMap(span.Attributes)
	checks := map[string]interface{}{
		"search.run_id":    "run-001",
		"search.step":      int64(4),
		"search.node":      int64(9),
		"search.g":         3.0,
		"search.frontier":  int64(12),
		"search.algorithm": "astar",
		"custom":           "value",
	}
	for key, want := range checks {
		if got := attrs[key]; got != want {
			t.Errorf("%s = %v, want %v", key, got, want)
		}
	}

	if !span.EndTime.After(span.StartTime) && !span.EndTime.Equal(span.StartTime) {
		t.Error("span was not ended")
	}
}

func TestOTelEmitter_EmitWithError(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	emitter.Emit(Event{
		RunID: "run-001",
		Step:  1,
		Msg:   "expansion_failed",
		Meta:  map[string]interface{}{"error": "successor buffer full"},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]

	if span.Status.Code != codes.Error {
		t.Errorf("status code = %v, want %v", span.Status.Code, codes.Error)
	}
	if span.Status.Description != "successor buffer full" {
		t.Errorf("status description = %q", span.Status.Description)
	}
	if len(span.Events) == 0 {
		t.Error("expected recorded error event, got none")
	}
}

func TestOTelEmitter_EmitBatch(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	events := []Event{
		{RunID: "run-001", Step: 0, Msg: "search_init"},
		{RunID: "run-001", Step: 1, Msg: "node_expanded"},
		{RunID: "run-001", Step: 2, Msg: "goal_found"},
	}
	if err := emitter.EmitBatch(context.Background(), events); err != nil {
		t.Fatalf("EmitBatch failed: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	for i, want := range []string{"search_init", "node_expanded", "goal_found"} {
		if spans[i].Name != want {
			t.Errorf("span %d name = %q, want %q", i, spans[i].Name, want)
		}
	}

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		exporter.Reset()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := emitter.EmitBatch(ctx, events); err == nil {
			t.Error("expected context error")
		}
		if len(exporter.GetSpans()) != 0 {
			t.Error("expected no spans after cancellation")
		}
	})
}

func TestOTelEmitter_Flush(t *testing.T) {
	_, emitter := newTestTracer(t)
	emitter.Emit(Event{RunID: "run-001", Msg: "goal_found"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := emitter.Flush(ctx); err != nil {
		t.Errorf("Flush failed: %v", err)
	}
}

func TestOTelEmitter_MetadataTypes(t *testing.T) {
	exporter, emitter := newTestTracer(t)

	emitter.Emit(Event{
		RunID: "run-001",
		Msg:   "types",
		Meta: map[string]interface{}{
			"int64":    int64(5),
			"bool":     true,
			"duration": 1500 * time.Millisecond,
			"other":    []int{1, 2},
		},
	})

	attrs := attributeMap(exporter.GetSpans()[0].Attributes)
	if attrs["int64"] != int64(5) {
		t.Errorf("int64 = %v", attrs["int64"])
	}
	if attrs["bool"] != true {
		t.Errorf("bool = %v", attrs["bool"])
	}
	if attrs["duration"] != int64(1500) {
		t.Errorf("duration = %v, want 1500", attrs["duration"])
	}
	if attrs["other"] != "[1 2]" {
		t.Errorf("other = %v, want %q", attrs["other"], "[1 2]")
	}
}

// attributeMap converts span attributes to map for easy testing.
func attributeMap(attrs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{})
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value.AsInterface()
	}
	return m
}
