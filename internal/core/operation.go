// Package core provides the operation composition primitives: the uniform
// typed function every use case implements, the middleware combinator that
// layers cross-cutting behavior around it, transactional resource handles
// carried through the execution context, and the error classification used
// by retry and front-end adapters.
//
// An operation is a plain function value:
//
//	op := func(ctx context.Context, req GreetRequest) (GreetResponse, error) { ... }
//
// Cross-cutting behavior is attached without changing the signature:
//
//	wrapped := core.Apply(op,
//	    middleware.Logging[GreetRequest, GreetResponse](logger, "Greet"),
//	    middleware.Transaction[GreetRequest, GreetResponse](store, logger),
//	)
//
// Operations are built once at wiring time by builder functions that close
// over their dependencies, and are safe for unlimited concurrent invocation
// when their dependencies are.
package core

import "context"

// Operation is the uniform unit of work: it receives an execution context and
// a typed request and returns a typed response or an error, never both. A
// non-nil error means the response carries no usable value.
//
// Operations obtain all non-determinism (time, identifiers, I/O) through
// dependencies injected at construction time, never from ambient state, so
// that two invocations with identical context contents and request are
// indistinguishable when the dependencies behave identically.
type Operation[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// Middleware transforms an operation into an operation of the same request
// and response types. The wrapped operation's external contract is unchanged;
// only when, how many times, and under which ambient resources the inner
// operation executes may differ.
type Middleware[Req, Res any] func(Operation[Req, Res]) Operation[Req, Res]

// Apply wraps op with the given middleware. The first middleware becomes the
// outermost layer (executed first on the way in, last on the way out),
// matching the intuitive reading order:
//
//	Apply(op, Logging, Retry, Transaction)
//
// is equivalent to:
//
//	Logging(Retry(Transaction(op)))
//
// The slice is a first-class configuration value: composition is associative
// but not commutative, so reordering it changes observable behavior (e.g.
// moving Transaction outside Retry makes all attempts share one handle).
func Apply[Req, Res any](op Operation[Req, Res], mws ...Middleware[Req, Res]) Operation[Req, Res] {
	for i := len(mws) - 1; i >= 0; i-- {
		op = mws[i](op)
	}
	return op
}
