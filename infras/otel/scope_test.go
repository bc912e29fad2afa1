package otel_test

import (
	"context"
	"errors"
	"fmt"
	"hostmaster/infras/otel"
	"hostmaster/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) trace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "reservation.Create")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_TraceIfError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvents int
	}{
		{name: "no error", err: nil, wantStatus: codes.Unset},
		{name: "client failure is an event", err: fmt.Errorf("create: %w", failure.Conflict("room already booked")), wantStatus: codes.Unset, wantEvents: 1},
		{name: "internal error fails the span", err: errors.New("connection reset"), wantStatus: codes.Error, wantEvents: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := record(t, func(scope otel.Scope) {
				scope.TraceIfError(tt.err)
			})

			assert.Equal(t, tt.wantStatus, span.Status().Code)
			assert.Len(t, span.Events(), tt.wantEvents)
		})
	}
}

func TestScope_DeferredClosureSeesFinalError(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		run := func() (err error) {
			defer func() { scope.TraceIfError(err) }()

			return errors.New("late failure")
		}

		_ = run()
	})

	assert.Equal(t, codes.Error, span.Status().Code)
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"room.id":     int64(12),
			"guests":      2,
			"confirmed":   true,
			"total_price": 240.5,
			"status":      "pending",
		})
	})

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(12), attrs["room.id"].AsInt64())
	assert.Equal(t, int64(2), attrs["guests"].AsInt64())
	assert.True(t, attrs["confirmed"].AsBool())
	assert.InDelta(t, 240.5, attrs["total_price"].AsFloat64(), 0.001)
	assert.Equal(t, "pending", attrs["status"].AsString())
}
