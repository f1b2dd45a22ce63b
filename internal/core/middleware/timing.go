package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/telemetry"
)

// Timing records an OpenTelemetry span plus duration and count metrics per
// invocation of the wrapped value. It sits directly inside Logging so it
// times everything below it, retries and transaction handling included.
//
// Safe to use with nil metrics; metric recording is then skipped while the
// span is still emitted.
func Timing[Req, Res any](metrics *telemetry.Metrics, operation string) core.Middleware[Req, Res] {
	return func(next core.Operation[Req, Res]) core.Operation[Req, Res] {
		return func(ctx context.Context, req Req) (Res, error) {
			tracer := otel.GetTracerProvider().Tracer("operation")

			ctx, span := tracer.Start(ctx, operation,
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			start := time.Now()
			res, err := next(ctx, req)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			recordTiming(ctx, metrics, operation, start, err)

			return res, err
		}
	}
}

// recordTiming records operation duration and count. Safe with nil metrics.
func recordTiming(ctx context.Context, metrics *telemetry.Metrics, operation string, start time.Time, err error) {
	if metrics == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrOperation.String(operation),
		telemetry.AttrResult.String(result),
	)

	metrics.OperationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	metrics.OperationTotal.Add(ctx, 1, attrs)
}
