// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	accountHandler *handlers.AccountHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/accounts", accountHandler.ListAccounts)
		r.Post("/accounts", accountHandler.CreateAccount)
		r.Get("/accounts/{id}", accountHandler.GetAccount)
		r.Get("/accounts/{id}/entries", accountHandler.ListEntries)

		// Money movements are sub-resources of the source account.
		r.Post("/accounts/{id}/deposits", accountHandler.Deposit)
		r.Post("/accounts/{id}/withdrawals", accountHandler.Withdraw)
		r.Post("/accounts/{id}/transfers", accountHandler.Transfer)
	})

	return r
}
