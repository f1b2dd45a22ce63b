package core

import (
	"context"
	"errors"
	"fmt"
)

// DependencyError reports a failure of an injected dependency, annotated with
// the operation step that called it. The underlying cause stays inspectable
// through Unwrap, so errors.Is/As checks against adapter sentinels keep
// working after wrapping.
type DependencyError struct {
	Step string
	Err  error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// WrapDependency annotates a dependency failure with the step name. Returns
// nil when err is nil so call sites can wrap unconditionally.
func WrapDependency(step string, err error) error {
	if err == nil {
		return nil
	}
	return &DependencyError{Step: step, Err: err}
}

// transienter is the marker interface resource adapters use to flag an error
// as retryable. Retry policy is decided by this explicit classification,
// never by inspecting error text.
type transienter interface {
	Transient() bool
}

// transientError marks a dependency failure as transient.
type transientError struct {
	err error
}

func (e *transientError) Error() string   { return e.err.Error() }
func (e *transientError) Unwrap() error   { return e.err }
func (e *transientError) Transient() bool { return true }

// Transient marks err as retryable. Resource adapters apply this to failures
// that a fresh attempt could plausibly resolve (connection resets, lock
// timeouts); validation and business-rule errors are never marked. Returns
// nil when err is nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err carries the transient marker. Context
// cancellation and deadline expiry are never transient: retrying work the
// caller has abandoned only completes stale work.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var t transienter
	return errors.As(err, &t) && t.Transient()
}
