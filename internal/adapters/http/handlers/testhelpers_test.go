package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/adapters/memstore"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/app"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/auth"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/config"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// fixedClock pins every timestamp to testTime.
type fixedClock struct{}

func (fixedClock) Now() time.Time { return testTime }

// seqIDs hands out id-1, id-2, ... so responses are predictable.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

// newTestOperations assembles real operations over a fresh in-memory store
// with deterministic clock and IDs, no auth, and a stack that never stalls a
// test on backoff.
func newTestOperations() *app.Operations {
	store := memstore.New()
	return app.BuildOperations(app.Deps{
		Accounts: memstore.NewAccountRepo(store),
		Ledger:   memstore.NewLedgerRepo(store),
		IDs:      &seqIDs{},
		Clock:    fixedClock{},
		TxSource: store,
		Authz:    auth.AllowAll{},
		Logger:   slog.New(slog.DiscardHandler),
		Stack: config.StackConfig{
			Timeout: 5 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     1,
				InitialInterval: time.Millisecond,
				MaxInterval:     time.Millisecond,
				Multiplier:      1,
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   100,
				Timeout:       time.Second,
				HalfOpenLimit: 1,
			},
		},
	})
}
