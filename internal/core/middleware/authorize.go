package middleware

import (
	"context"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// Authorize rejects callers that may not exercise the given scope. It sits
// between Timing and Validate in the canonical stack: early enough that
// forbidden calls spend no downstream resources, late enough that the
// rejection is observed by logging and metrics.
func Authorize[Req, Res any](authz ports.Authorizer, scope string) core.Middleware[Req, Res] {
	return func(next core.Operation[Req, Res]) core.Operation[Req, Res] {
		return func(ctx context.Context, req Req) (Res, error) {
			if err := authz.Authorize(ctx, scope); err != nil {
				var zero Res
				return zero, err
			}
			return next(ctx, req)
		}
	}
}
