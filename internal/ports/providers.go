package ports

import (
	"context"
	"time"
)

// Clock provides the current time. Operations never read the wall clock
// directly; injecting it keeps them deterministic under test.
type Clock interface {
	Now() time.Time
}

// IDProvider generates unique identifiers. Same rationale as Clock:
// identifier generation is non-determinism and must be injected.
type IDProvider interface {
	NewID() string
}

// Authorizer decides whether the caller behind ctx may exercise the named
// scope. Implementations read caller credentials from the execution context
// (placed there by a front-end adapter) and return domain.ErrForbidden-class
// errors on rejection.
type Authorizer interface {
	Authorize(ctx context.Context, scope string) error
}
