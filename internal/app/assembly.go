package app

import (
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/core/middleware"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/config"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/telemetry"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// Scopes exercised by the operation stack. Tokens carry a space-separated
// scope claim; the authorizer checks membership.
const (
	ScopeRead  = "accounts:read"
	ScopeWrite = "accounts:write"
)

// Deps bundles the shared singletons every operation draws from. The wiring
// layer resolves each once and hands the same instances to every builder, so
// all operations observe one store, one clock and one authorizer.
type Deps struct {
	Accounts ports.AccountRepository
	Ledger   ports.LedgerRepository
	IDs      ports.IDProvider
	Clock    ports.Clock
	TxSource core.TxProvider
	Authz    ports.Authorizer
	Logger   *slog.Logger
	Metrics  *telemetry.Metrics
	Stack    config.StackConfig
}

// Operations is the assembled set of fully wrapped use cases. Front ends
// depend on this struct only; every field already carries its middleware
// stack, so invoking a field is the complete external entry point.
type Operations struct {
	CreateAccount core.Operation[CreateAccountRequest, CreateAccountResponse]
	GetAccount    core.Operation[GetAccountRequest, GetAccountResponse]
	ListAccounts  core.Operation[ListAccountsRequest, ListAccountsResponse]
	ListEntries   core.Operation[ListEntriesRequest, ListEntriesResponse]
	Deposit       core.Operation[DepositRequest, DepositResponse]
	Withdraw      core.Operation[WithdrawRequest, WithdrawResponse]
	Transfer      core.Operation[TransferRequest, TransferResponse]
}

// BuildOperations wraps every use case in its middleware stack. Writes get
// the full stack including Retry and Transaction; reads skip both since a
// read against this store has nothing to roll back and nothing transient to
// retry.
//
// One rate limiter caps aggregate throughput across all operations.
func BuildOperations(d Deps) *Operations {
	limiter := newLimiter(d.Stack.RateLimit)

	return &Operations{
		CreateAccount: core.Apply(
			NewCreateAccount(d.Accounts, d.IDs, d.Clock),
			writeStack[CreateAccountRequest, CreateAccountResponse](d, limiter, "CreateAccount")...,
		),
		GetAccount: core.Apply(
			NewGetAccount(d.Accounts, d.Ledger),
			readStack[GetAccountRequest, GetAccountResponse](d, limiter, "GetAccount")...,
		),
		ListAccounts: core.Apply(
			NewListAccounts(d.Accounts),
			readStack[ListAccountsRequest, ListAccountsResponse](d, limiter, "ListAccounts")...,
		),
		ListEntries: core.Apply(
			NewListEntries(d.Ledger),
			readStack[ListEntriesRequest, ListEntriesResponse](d, limiter, "ListEntries")...,
		),
		Deposit: core.Apply(
			NewDeposit(d.Accounts, d.Ledger, d.IDs, d.Clock),
			writeStack[DepositRequest, DepositResponse](d, limiter, "Deposit")...,
		),
		Withdraw: core.Apply(
			NewWithdraw(d.Accounts, d.Ledger, d.IDs, d.Clock),
			writeStack[WithdrawRequest, WithdrawResponse](d, limiter, "Withdraw")...,
		),
		Transfer: core.Apply(
			NewTransfer(d.Accounts, d.Ledger, d.IDs, d.Clock),
			writeStack[TransferRequest, TransferResponse](d, limiter, "Transfer")...,
		),
	}
}

// writeStack is the canonical order for mutating operations, outermost
// first. Breaker sits outside Retry so an exhausted retry loop counts as one
// failure; Transaction stays innermost so every retry attempt runs in a
// fresh unit of work.
func writeStack[Req, Res any](d Deps, limiter *rate.Limiter, operation string) []core.Middleware[Req, Res] {
	return []core.Middleware[Req, Res]{
		middleware.Logging[Req, Res](d.Logger, operation),
		middleware.Timing[Req, Res](d.Metrics, operation),
		middleware.Timeout[Req, Res](d.Stack.Timeout),
		middleware.Authorize[Req, Res](d.Authz, ScopeWrite),
		middleware.RateLimit[Req, Res](limiter),
		middleware.Breaker[Req, Res](middleware.BreakerConfig{
			MaxFailures:   d.Stack.CircuitBreaker.MaxFailures,
			Timeout:       d.Stack.CircuitBreaker.Timeout,
			HalfOpenLimit: d.Stack.CircuitBreaker.HalfOpenLimit,
		}, operation, d.Logger),
		middleware.Retry[Req, Res](middleware.RetryConfig{
			MaxAttempts:     d.Stack.Retry.MaxAttempts,
			InitialInterval: d.Stack.Retry.InitialInterval,
			MaxInterval:     d.Stack.Retry.MaxInterval,
			Multiplier:      d.Stack.Retry.Multiplier,
		}, operation),
		middleware.Transaction[Req, Res](d.TxSource, d.Logger),
	}
}

// readStack covers read-only operations.
func readStack[Req, Res any](d Deps, limiter *rate.Limiter, operation string) []core.Middleware[Req, Res] {
	return []core.Middleware[Req, Res]{
		middleware.Logging[Req, Res](d.Logger, operation),
		middleware.Timing[Req, Res](d.Metrics, operation),
		middleware.Timeout[Req, Res](d.Stack.Timeout),
		middleware.Authorize[Req, Res](d.Authz, ScopeRead),
		middleware.RateLimit[Req, Res](limiter),
	}
}

// newLimiter builds the shared limiter, or nil when limiting is disabled.
func newLimiter(cfg config.RateLimitConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}
