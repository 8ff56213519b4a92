package laminar

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Observe runs fn inside a span named after the operation. The span is
// ended on every exit path, including panics; an error returned by fn is
// recorded on the span and sets an error status before being returned.
func Observe(ctx context.Context, tracer trace.Tracer, operation string, fn func(context.Context) error, opts ...trace.SpanStartOption) error {
	ctx, span := tracer.Start(ctx, operation, opts...)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	span.SetStatus(codes.Ok, "")

	return nil
}

// ObserveValue is Observe for operations that produce a value.
func ObserveValue[T any](ctx context.Context, tracer trace.Tracer, operation string, fn func(context.Context) (T, error), opts ...trace.SpanStartOption) (T, error) {
	ctx, span := tracer.Start(ctx, operation, opts...)
	defer span.End()

	value, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return value, err
	}

	span.SetStatus(codes.Ok, "")

	return value, nil
}

// SetAttributes sets attributes on the current span.
func SetAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).SetAttributes(attrs...)
}

// RecordError records an error on the current span and sets status.
// If err is nil, this is a no-op.
func RecordError(ctx context.Context, err error, opts ...trace.EventOption) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}

// TraceID returns the trace ID from context, or empty string if none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}
