package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
)

// RateLimit blocks until the limiter grants a slot or the context is
// canceled. A nil limiter disables limiting, matching how the rest of the
// stack treats absent configuration.
//
// The limiter is shared by every operation wrapped with the same instance,
// so a single limiter can cap aggregate throughput against one backing
// resource.
func RateLimit[Req, Res any](limiter *rate.Limiter) core.Middleware[Req, Res] {
	return func(next core.Operation[Req, Res]) core.Operation[Req, Res] {
		return func(ctx context.Context, req Req) (Res, error) {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					var zero Res
					return zero, err
				}
			}
			return next(ctx, req)
		}
	}
}
