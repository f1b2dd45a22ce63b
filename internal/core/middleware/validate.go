package middleware

import (
	"context"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
)

// Validate rejects requests that fail the given check before the inner
// operation runs, so failure is cheap and side-effect-free. The check should
// return domain.ValidationError-class errors.
//
// Operations still own their business-rule preconditions; this combinator is
// for request-shape checks that can be decided from the request alone.
func Validate[Req, Res any](check func(Req) error) core.Middleware[Req, Res] {
	return func(next core.Operation[Req, Res]) core.Operation[Req, Res] {
		return func(ctx context.Context, req Req) (Res, error) {
			if err := check(req); err != nil {
				var zero Res
				return zero, err
			}
			return next(ctx, req)
		}
	}
}
