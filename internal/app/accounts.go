// Package app provides the use-case operations. Each builder closes over the
// dependencies the operation declares as explicit parameters and returns a
// core.Operation value; the wiring layer wraps that value in the middleware
// stack and binds it to front ends.
//
// Every operation validates its request before touching any dependency, so
// validation failures are cheap and side-effect-free. Dependency failures
// are wrapped with the step that called them; business-rule failures are
// bare domain sentinels.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// CreateAccountRequest asks for a new account holding zero balance.
type CreateAccountRequest struct {
	Owner    string
	Currency string
}

// CreateAccountResponse carries the created account with server-assigned
// fields (ID, timestamps).
type CreateAccountResponse struct {
	Account domain.Account
}

// NewCreateAccount builds the account creation operation. Uniqueness of
// owner+currency is a business-rule precondition checked against the
// repository after validation passes.
func NewCreateAccount(
	accounts ports.AccountRepository,
	ids ports.IDProvider,
	clk ports.Clock,
) core.Operation[CreateAccountRequest, CreateAccountResponse] {
	return func(ctx context.Context, req CreateAccountRequest) (CreateAccountResponse, error) {
		candidate := domain.Account{
			Owner:    strings.TrimSpace(req.Owner),
			Currency: req.Currency,
		}
		if err := candidate.Validate(); err != nil {
			return CreateAccountResponse{}, err
		}

		_, exists, err := accounts.FindByOwner(ctx, candidate.Owner, candidate.Currency)
		if err != nil {
			return CreateAccountResponse{}, core.WrapDependency("find account by owner", err)
		}
		if exists {
			return CreateAccountResponse{}, fmt.Errorf("account for %s/%s already exists: %w",
				candidate.Owner, candidate.Currency, domain.ErrConflict)
		}

		now := clk.Now()
		candidate.ID = ids.NewID()
		candidate.CreatedAt = now
		candidate.UpdatedAt = now

		if err := accounts.Insert(ctx, candidate); err != nil {
			return CreateAccountResponse{}, core.WrapDependency("insert account", err)
		}

		return CreateAccountResponse{Account: candidate}, nil
	}
}

// GetAccountRequest asks for one account and its ledger history.
type GetAccountRequest struct {
	AccountID string
}

// GetAccountResponse carries the account and its entries, oldest first.
type GetAccountResponse struct {
	Account domain.Account
	Entries []domain.Entry
}

// NewGetAccount builds the single-account read operation.
func NewGetAccount(
	accounts ports.AccountRepository,
	ledger ports.LedgerRepository,
) core.Operation[GetAccountRequest, GetAccountResponse] {
	return func(ctx context.Context, req GetAccountRequest) (GetAccountResponse, error) {
		if strings.TrimSpace(req.AccountID) == "" {
			return GetAccountResponse{}, &domain.ValidationError{
				Fields: map[string]string{"account_id": "must not be empty"},
			}
		}

		account, err := accounts.Get(ctx, req.AccountID)
		if err != nil {
			return GetAccountResponse{}, core.WrapDependency("load account", err)
		}

		entries, err := ledger.ListByAccount(ctx, req.AccountID)
		if err != nil {
			return GetAccountResponse{}, core.WrapDependency("list ledger entries", err)
		}

		return GetAccountResponse{Account: account, Entries: entries}, nil
	}
}

// ListAccountsRequest asks for all accounts.
type ListAccountsRequest struct{}

// ListAccountsResponse carries accounts ordered by creation time.
type ListAccountsResponse struct {
	Accounts []domain.Account
}

// NewListAccounts builds the account listing operation.
func NewListAccounts(accounts ports.AccountRepository) core.Operation[ListAccountsRequest, ListAccountsResponse] {
	return func(ctx context.Context, _ ListAccountsRequest) (ListAccountsResponse, error) {
		list, err := accounts.List(ctx)
		if err != nil {
			return ListAccountsResponse{}, core.WrapDependency("list accounts", err)
		}
		return ListAccountsResponse{Accounts: list}, nil
	}
}
