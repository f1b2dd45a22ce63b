// Package wiring registers the dependency graph on a samber/do injector.
// Every component is provided as a lazy singleton: the first Invoke builds
// it, later Invokes share the same instance, so all operations observe one
// store, one clock and one authorizer.
//
// The graph is acyclic by construction; do reports an error on resolution if
// a provider ends up depending on itself, so a wiring mistake fails at
// startup rather than mid-request.
package wiring

import (
	"log/slog"
	nethttp "net/http"

	"github.com/samber/do/v2"

	adapthttp "github.com/mirzaakhena/cug-prompt-instructions/internal/adapters/http"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/adapters/http/handlers"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/adapters/http/middleware"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/adapters/memstore"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/app"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/auth"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/clock"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/config"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/health"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/telemetry"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// Register wires the full dependency graph. The caller provides cfg and
// logger directly and is expected to have placed *telemetry.Metrics on the
// injector beforehand (a nil value is fine when telemetry is disabled).
func Register(injector do.Injector, cfg *config.Config, logger *slog.Logger) {
	// Backing store: one instance serves as transaction provider,
	// repository backend and health checker.
	do.Provide(injector, func(_ do.Injector) (*memstore.Store, error) {
		return memstore.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (core.TxProvider, error) {
		return do.MustInvoke[*memstore.Store](i), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.AccountRepository, error) {
		store := do.MustInvoke[*memstore.Store](i)
		return memstore.NewAccountRepo(store), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.LedgerRepository, error) {
		store := do.MustInvoke[*memstore.Store](i)
		return memstore.NewLedgerRepo(store), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.Clock, error) {
		return clock.System{}, nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.IDProvider, error) {
		return clock.UUID{}, nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.Authorizer, error) {
		if cfg.Auth.Enabled {
			return auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer), nil
		}
		return auth.AllowAll{}, nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.Operations, error) {
		return app.BuildOperations(app.Deps{
			Accounts: do.MustInvoke[ports.AccountRepository](i),
			Ledger:   do.MustInvoke[ports.LedgerRepository](i),
			IDs:      do.MustInvoke[ports.IDProvider](i),
			Clock:    do.MustInvoke[ports.Clock](i),
			TxSource: do.MustInvoke[core.TxProvider](i),
			Authz:    do.MustInvoke[ports.Authorizer](i),
			Logger:   logger,
			Metrics:  do.MustInvoke[*telemetry.Metrics](i),
			Stack:    cfg.Stack,
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.AccountHandler, error) {
		ops := do.MustInvoke[*app.Operations](i)
		return handlers.NewAccountHandler(ops), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		accountH := do.MustInvoke[*handlers.AccountHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(accountH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.BearerToken(),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
