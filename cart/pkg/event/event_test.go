package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestHeaderCarrierPropagatesTraceContext(t *testing.T) {
	traceId, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanId, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceId,
		SpanID:     spanId,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	c := trace.ContextWithSpanContext(context.Background(), spanCtx)

	propagator := propagation.TraceContext{}
	headers := HeaderCarrier{}
	propagator.Inject(c, headers)

	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", headers.Get("traceparent"))
	assert.Contains(t, headers.Keys(), "traceparent")

	extracted := trace.SpanContextFromContext(propagator.Extract(context.Background(), headers))
	assert.Equal(t, traceId, extracted.TraceID())
	assert.Equal(t, spanId, extracted.SpanID())
}

func TestHeaderCarrierIgnoresNonStringValues(t *testing.T) {
	headers := HeaderCarrier{"retries": int32(3)}
	assert.Equal(t, "", headers.Get("retries"))
	assert.Equal(t, "", headers.Get("missing"))
}
