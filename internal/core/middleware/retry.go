package middleware

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"log/slog"
	"math"
	"time"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/logging"
)

// jitterFraction is the maximum jitter as a fraction of the delay (±25%).
const jitterFraction = 0.25

// RetryConfig holds the retry policy: bounded attempts with exponential
// backoff and jitter.
type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// Retry re-invokes the inner operation when it fails with an error the
// resource adapter has marked transient (core.IsTransient). Validation and
// business-rule errors, and context cancellation, are never retried. After
// the last attempt the last error propagates unchanged.
//
// Retry must sit outside Transaction so every attempt runs in a fresh unit
// of work; an attempt's partial writes are rolled back before the next one
// begins.
func Retry[Req, Res any](cfg RetryConfig, operation string) core.Middleware[Req, Res] {
	return func(next core.Operation[Req, Res]) core.Operation[Req, Res] {
		return func(ctx context.Context, req Req) (Res, error) {
			attempts := cfg.MaxAttempts
			if attempts < 1 {
				attempts = 1
			}

			var res Res
			var err error

			for attempt := range attempts {
				if attempt > 0 {
					if waitErr := waitForRetry(ctx, cfg, operation, attempt, err); waitErr != nil {
						return res, waitErr
					}
				}

				res, err = next(ctx, req)
				if err == nil {
					return res, nil
				}
				if !core.IsTransient(err) {
					return res, err
				}
			}

			return res, err
		}
	}
}

// waitForRetry logs the upcoming attempt at WARN level and sleeps for the
// backoff delay, aborting early on context cancellation.
func waitForRetry(ctx context.Context, cfg RetryConfig, operation string, attempt int, lastErr error) error {
	delay := backoff(attempt, cfg)

	logging.FromContext(ctx).WarnContext(ctx, "retrying operation",
		slog.String("operation", operation),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", cfg.MaxAttempts),
		slog.Duration("backoff", delay),
		slog.Any("error", lastErr),
	)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// backoff calculates the delay for a given retry attempt using exponential
// backoff with ±25% jitter. The attempt parameter is 1-indexed (attempt 1 is
// the first retry).
func backoff(attempt int, cfg RetryConfig) time.Duration {
	delay := float64(cfg.InitialInterval) * math.Pow(cfg.Multiplier, float64(attempt-1))

	// Cap at max interval before applying jitter.
	if cfg.MaxInterval > 0 && delay > float64(cfg.MaxInterval) {
		delay = float64(cfg.MaxInterval)
	}

	// Apply ±25% jitter to prevent thundering herd.
	jitter := delay * jitterFraction
	delay += jitter * (2*secureRandFloat64() - 1)

	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}

// IEEE 754 double-precision constants for random float generation.
const (
	significandBits = 53
	uint64Bits      = 64
)

// secureRandFloat64 returns a random float64 in [0, 1) using crypto/rand.
func secureRandFloat64() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0
	}
	return float64(binary.BigEndian.Uint64(b[:])>>(uint64Bits-significandBits)) / float64(uint64(1)<<significandBits)
}
