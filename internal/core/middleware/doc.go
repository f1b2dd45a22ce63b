// Package middleware provides the combinators that attach cross-cutting
// behavior to an operation without changing its signature or its callers.
//
// The canonical stack for mutating operations, outermost to innermost:
//
//	Logging → Timing → Timeout → Authorize → RateLimit → Breaker → Retry → Transaction
//
// Logging sits outside everything so it observes every outcome including
// failures in inner layers; Authorize rejects before resources are spent;
// Breaker wraps Retry so an exhausted retry loop counts as a single failure;
// Retry re-invokes everything inside it, so Transaction stays innermost and
// each attempt gets a fresh handle. Reordering is legal but changes observable
// behavior: Transaction outside Retry makes all attempts share one handle,
// defeating isolation of a failed attempt.
//
// Validate is available for front ends that cannot validate before invoking;
// the wired operations validate internally so the stack omits it.
package middleware
