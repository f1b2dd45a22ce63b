package core

import "context"

// Tx is an open unit of work against a stateful backing store. Exactly one
// terminal action (Commit or Rollback) is applied per handle; a handle is
// never reused after its terminal action.
//
// A handle is exclusively owned by the Transaction middleware invocation that
// created it. Inner operations borrow it through the execution context but
// never terminate it.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxProvider opens transactional handles on demand. Implementations must be
// safe for concurrent Begin calls; each external request that needs atomicity
// gets its own handle.
type TxProvider interface {
	// Source identifies the backing store. Handles are attached to the
	// execution context under this name, which is what lets a nested
	// Transaction layer for the same store reuse the outer handle instead
	// of opening a second one.
	Source() string

	// Begin opens a new unit of work.
	Begin(ctx context.Context) (Tx, error)
}

// txKey scopes an attached handle to one backing store. The struct key keeps
// attachments from different stores, and from other packages' context values,
// fully independent.
type txKey struct{ source string }

// WithTx returns a child context carrying tx as the active handle for the
// named backing store. The parent context is never mutated; attachment is an
// allocation-only derivation, so the same parent can be reused by independent
// call sites.
func WithTx(ctx context.Context, source string, tx Tx) context.Context {
	return context.WithValue(ctx, txKey{source: source}, tx)
}

// TxFromContext returns the active handle for the named backing store.
// Absence is a valid case and is reported via ok, never a panic. Lookup walks
// the context chain from innermost to outermost attachment.
func TxFromContext(ctx context.Context, source string) (Tx, bool) {
	tx, ok := ctx.Value(txKey{source: source}).(Tx)
	return tx, ok
}
