package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/logging"
)

// Logging wraps op with start/completion logs. Exactly one pair of entries is
// emitted per invocation of the wrapped value, so its position in the stack
// decides what it observes: outside Transaction it logs the outcome of the
// whole transactional unit once per external call; inside Retry it logs every
// attempt.
//
// When logger is nil the context-carried logger is used, falling back to
// slog.Default.
func Logging[Req, Res any](logger *slog.Logger, operation string) core.Middleware[Req, Res] {
	return func(next core.Operation[Req, Res]) core.Operation[Req, Res] {
		return func(ctx context.Context, req Req) (Res, error) {
			log := logger
			if log == nil {
				log = logging.FromContext(ctx)
			}

			start := time.Now()
			log.InfoContext(ctx, "operation started",
				slog.String("operation", operation),
			)

			res, err := next(ctx, req)

			if err != nil {
				log.ErrorContext(ctx, "operation failed",
					slog.String("operation", operation),
					slog.Duration("duration", time.Since(start)),
					slog.Any("error", err),
				)
				return res, err
			}

			log.InfoContext(ctx, "operation completed",
				slog.String("operation", operation),
				slog.Duration("duration", time.Since(start)),
			)
			return res, nil
		}
	}
}
