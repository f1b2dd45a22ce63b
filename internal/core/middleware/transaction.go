package middleware

import (
	"context"
	"log/slog"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
)

// Transaction wraps op in a unit of work against the provider's backing
// store. Per invocation it opens a handle, attaches it to a derived context,
// and applies exactly one terminal action on every exit path:
//
//   - inner returns nil error  → Commit, inner result returned unchanged
//   - inner returns an error   → Rollback, inner error returned unchanged
//   - inner panics             → Rollback, then the panic propagates
//
// Transactions are flat: when a handle for the same backing store is already
// attached to the context, the existing handle is borrowed and no terminal
// action is taken at this layer — the outermost Transaction owns it. Each
// external request gets its own handle; handles are never shared across
// concurrent invocations.
//
// Rollback failures are logged, not returned: the inner error (or panic) is
// the condition the caller needs to see.
func Transaction[Req, Res any](provider core.TxProvider, logger *slog.Logger) core.Middleware[Req, Res] {
	return func(next core.Operation[Req, Res]) core.Operation[Req, Res] {
		return func(ctx context.Context, req Req) (Res, error) {
			if _, ok := core.TxFromContext(ctx, provider.Source()); ok {
				return next(ctx, req)
			}

			var zero Res

			tx, err := provider.Begin(ctx)
			if err != nil {
				return zero, core.WrapDependency("begin transaction", err)
			}

			// The deferred rollback fires on the error return and on
			// panic; terminal stays false until commit is attempted, so
			// the handle receives exactly one terminal action.
			terminal := false
			defer func() {
				if terminal {
					return
				}
				if rbErr := tx.Rollback(ctx); rbErr != nil && logger != nil {
					logger.ErrorContext(ctx, "transaction rollback failed",
						slog.String("source", provider.Source()),
						slog.Any("error", rbErr),
					)
				}
			}()

			res, err := next(core.WithTx(ctx, provider.Source(), tx), req)
			if err != nil {
				return zero, err
			}

			terminal = true
			if err := tx.Commit(ctx); err != nil {
				return zero, core.WrapDependency("commit transaction", err)
			}
			return res, nil
		}
	}
}
