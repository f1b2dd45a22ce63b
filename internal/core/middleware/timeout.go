package middleware

import (
	"context"
	"time"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
)

// Timeout runs the inner operation under a derived deadline. Cancellation is
// cooperative: the inner operation and its dependencies must check the
// context signal; an operation that ignores it runs to completion anyway and
// its result is returned as-is.
//
// A d of zero or less disables the deadline.
func Timeout[Req, Res any](d time.Duration) core.Middleware[Req, Res] {
	return func(next core.Operation[Req, Res]) core.Operation[Req, Res] {
		return func(ctx context.Context, req Req) (Res, error) {
			if d <= 0 {
				return next(ctx, req)
			}
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, req)
		}
	}
}
