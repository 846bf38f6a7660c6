package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	_, span := provider.Tracer("test").Start(context.Background(), "RecordError")

	RecordError(nil, span)
	RecordError(errors.New("boom"), span)
	span.End()

	spans := recorder.Ended()
	assert.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	assert.Len(t, spans[0].Events(), 2)
}

func TestShutdownOtel(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")
	shutdowns := []ShutdownFunc{
		func(context.Context) error { return errFirst },
		func(context.Context) error { return nil },
		func(context.Context) error { return errSecond },
	}

	err := ShutdownOtel(context.Background(), shutdowns)

	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, errSecond)
	assert.NoError(t, ShutdownOtel(context.Background(), nil))
}
