package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/core/middleware"
)

// recordingTx counts terminal actions so the exactly-once discipline is
// observable.
type recordingTx struct {
	commits   int
	rollbacks int
	commitErr error
}

func (t *recordingTx) Commit(context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *recordingTx) Rollback(context.Context) error {
	t.rollbacks++
	return nil
}

// recordingProvider hands out recordingTx handles.
type recordingProvider struct {
	source   string
	handles  []*recordingTx
	beginErr error
}

func (p *recordingProvider) Source() string { return p.source }

func (p *recordingProvider) Begin(context.Context) (core.Tx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	tx := &recordingTx{}
	p.handles = append(p.handles, tx)
	return tx, nil
}

func newProvider() *recordingProvider {
	return &recordingProvider{source: "teststore"}
}

func TestTransaction_CommitOnSuccess(t *testing.T) {
	t.Parallel()

	provider := newProvider()
	op := middleware.Transaction[string, string](provider, nil)(
		func(ctx context.Context, req string) (string, error) {
			if _, ok := core.TxFromContext(ctx, "teststore"); !ok {
				t.Error("inner operation did not see the attached handle")
			}
			return req + "!", nil
		})

	res, err := op(context.Background(), "ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != "ok!" {
		t.Errorf("res = %q, want %q", res, "ok!")
	}

	if len(provider.handles) != 1 {
		t.Fatalf("opened %d handles, want 1", len(provider.handles))
	}
	tx := provider.handles[0]
	if tx.commits != 1 || tx.rollbacks != 0 {
		t.Errorf("commits=%d rollbacks=%d, want 1/0", tx.commits, tx.rollbacks)
	}
}

func TestTransaction_RollbackOnError_InnerErrorUnchanged(t *testing.T) {
	t.Parallel()

	innerErr := errors.New("business failure")
	provider := newProvider()
	op := middleware.Transaction[string, string](provider, nil)(
		func(context.Context, string) (string, error) {
			return "", innerErr
		})

	_, err := op(context.Background(), "x")
	if !errors.Is(err, innerErr) {
		t.Errorf("err = %v, want inner error unchanged", err)
	}

	tx := provider.handles[0]
	if tx.commits != 0 || tx.rollbacks != 1 {
		t.Errorf("commits=%d rollbacks=%d, want 0/1", tx.commits, tx.rollbacks)
	}
}

func TestTransaction_RollbackOnPanic_PanicPropagates(t *testing.T) {
	t.Parallel()

	provider := newProvider()
	op := middleware.Transaction[string, string](provider, nil)(
		func(context.Context, string) (string, error) {
			panic("boom")
		})

	func() {
		defer func() {
			if v := recover(); v != "boom" {
				t.Errorf("recovered %v, want original panic value", v)
			}
		}()
		_, _ = op(context.Background(), "x")
	}()

	tx := provider.handles[0]
	if tx.commits != 0 || tx.rollbacks != 1 {
		t.Errorf("commits=%d rollbacks=%d, want 0/1", tx.commits, tx.rollbacks)
	}
}

func TestTransaction_ReusesAttachedHandle(t *testing.T) {
	t.Parallel()

	provider := newProvider()
	mw := middleware.Transaction[string, string](provider, nil)

	// Nested layers for the same store share the outer handle; only the
	// outermost applies a terminal action.
	inner := mw(func(context.Context, string) (string, error) {
		return "done", nil
	})
	outer := mw(func(ctx context.Context, req string) (string, error) {
		return inner(ctx, req)
	})

	if _, err := outer(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.handles) != 1 {
		t.Fatalf("opened %d handles, want 1 (flat transactions)", len(provider.handles))
	}
	tx := provider.handles[0]
	if tx.commits != 1 || tx.rollbacks != 0 {
		t.Errorf("commits=%d rollbacks=%d, want exactly one commit", tx.commits, tx.rollbacks)
	}
}

func TestTransaction_DistinctSourcesOpenDistinctHandles(t *testing.T) {
	t.Parallel()

	primary := &recordingProvider{source: "primary"}
	secondary := &recordingProvider{source: "secondary"}

	op := middleware.Transaction[string, string](primary, nil)(
		middleware.Transaction[string, string](secondary, nil)(
			func(ctx context.Context, req string) (string, error) {
				if _, ok := core.TxFromContext(ctx, "primary"); !ok {
					t.Error("missing primary handle")
				}
				if _, ok := core.TxFromContext(ctx, "secondary"); !ok {
					t.Error("missing secondary handle")
				}
				return req, nil
			}))

	if _, err := op(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(primary.handles) != 1 || len(secondary.handles) != 1 {
		t.Errorf("handles: primary=%d secondary=%d, want 1 each",
			len(primary.handles), len(secondary.handles))
	}
}

func TestTransaction_BeginFailureWrapped(t *testing.T) {
	t.Parallel()

	beginErr := errors.New("store down")
	provider := &recordingProvider{source: "teststore", beginErr: beginErr}

	called := false
	op := middleware.Transaction[string, string](provider, nil)(
		func(context.Context, string) (string, error) {
			called = true
			return "", nil
		})

	_, err := op(context.Background(), "x")
	if !errors.Is(err, beginErr) {
		t.Errorf("err = %v, want wrapped begin error", err)
	}
	var depErr *core.DependencyError
	if !errors.As(err, &depErr) {
		t.Error("expected dependency error wrapping")
	}
	if called {
		t.Error("inner operation ran despite begin failure")
	}
}

func TestTransaction_CommitFailureReported(t *testing.T) {
	t.Parallel()

	commitErr := errors.New("write conflict")
	provider := newProvider()
	op := middleware.Transaction[string, string](provider, nil)(
		func(context.Context, string) (string, error) {
			provider.handles[0].commitErr = commitErr
			return "done", nil
		})

	_, err := op(context.Background(), "x")
	if !errors.Is(err, commitErr) {
		t.Errorf("err = %v, want commit error surfaced", err)
	}

	// Commit was the terminal action; no rollback follows it.
	tx := provider.handles[0]
	if tx.commits != 1 || tx.rollbacks != 0 {
		t.Errorf("commits=%d rollbacks=%d, want 1/0", tx.commits, tx.rollbacks)
	}
}
