package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
)

// BreakerConfig holds circuit breaker settings for an operation.
type BreakerConfig struct {
	MaxFailures   int
	Timeout       time.Duration
	HalfOpenLimit int
}

// Breaker wraps the operation in a circuit breaker: after MaxFailures
// consecutive failures the inner operation stops being invoked and callers
// fail fast with gobreaker.ErrOpenState until the timeout elapses. Each
// wrapped operation gets its own breaker instance, created once at wiring
// time.
//
// Place it outside Retry so exhausted retries count as one failure, not one
// per attempt.
func Breaker[Req, Res any](cfg BreakerConfig, operation string, logger *slog.Logger) core.Middleware[Req, Res] {
	cb := gobreaker.NewCircuitBreaker[Res](gobreaker.Settings{
		Name:        operation,
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("circuit breaker state change",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			}
		},
	})

	return func(next core.Operation[Req, Res]) core.Operation[Req, Res] {
		return func(ctx context.Context, req Req) (Res, error) {
			return cb.Execute(func() (Res, error) {
				return next(ctx, req)
			})
		}
	}
}

// toUint32 safely converts a non-negative int to uint32, clamping negatives
// to zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	return uint32(v)
}
