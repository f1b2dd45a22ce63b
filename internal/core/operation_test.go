package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
)

// tag appends a label on the way in and out so composition order is visible.
func tag(label string, trace *[]string) core.Middleware[string, string] {
	return func(next core.Operation[string, string]) core.Operation[string, string] {
		return func(ctx context.Context, req string) (string, error) {
			*trace = append(*trace, label+":in")
			res, err := next(ctx, req)
			*trace = append(*trace, label+":out")
			return res, err
		}
	}
}

func TestApply_OrderingFirstIsOutermost(t *testing.T) {
	t.Parallel()

	var trace []string
	op := func(_ context.Context, req string) (string, error) {
		trace = append(trace, "op")
		return req + "!", nil
	}

	wrapped := core.Apply(op,
		tag("a", &trace),
		tag("b", &trace),
		tag("c", &trace),
	)

	res, err := wrapped(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != "hi!" {
		t.Errorf("res = %q, want %q", res, "hi!")
	}

	want := []string{"a:in", "b:in", "c:in", "op", "c:out", "b:out", "a:out"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestApply_NoMiddlewareReturnsOperationBehavior(t *testing.T) {
	t.Parallel()

	op := func(_ context.Context, req int) (int, error) {
		return req * 2, nil
	}

	wrapped := core.Apply(op)
	res, err := wrapped(context.Background(), 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != 42 {
		t.Errorf("res = %d, want 42", res)
	}
}

func TestApply_ErrorPassesThroughUnchanged(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("inner failure")
	op := func(_ context.Context, _ string) (string, error) {
		return "", sentinel
	}

	var trace []string
	wrapped := core.Apply(op, tag("outer", &trace))

	_, err := wrapped(context.Background(), "x")
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want %v", err, sentinel)
	}
}
