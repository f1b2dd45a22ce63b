package app

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// DepositRequest credits an account with a positive amount in minor units.
type DepositRequest struct {
	AccountID string
	Amount    int64
}

// DepositResponse carries the updated account and the recorded entry.
type DepositResponse struct {
	Account domain.Account
	Entry   domain.Entry
}

// NewDeposit builds the deposit operation. The balance update and the ledger
// entry are two writes against the same store, so the operation is meant to
// run inside the Transaction middleware; it still works without one, at the
// cost of atomicity.
func NewDeposit(
	accounts ports.AccountRepository,
	ledger ports.LedgerRepository,
	ids ports.IDProvider,
	clk ports.Clock,
) core.Operation[DepositRequest, DepositResponse] {
	return func(ctx context.Context, req DepositRequest) (DepositResponse, error) {
		if err := validateMovement(req.AccountID, req.Amount); err != nil {
			return DepositResponse{}, err
		}

		account, err := accounts.Get(ctx, req.AccountID)
		if err != nil {
			return DepositResponse{}, core.WrapDependency("load account", err)
		}
		if creditOverflows(account.Balance, req.Amount) {
			return DepositResponse{}, fmt.Errorf("balance overflow on account %s: %w",
				account.ID, domain.ErrConflict)
		}

		now := clk.Now()
		account.Balance += req.Amount
		account.UpdatedAt = now

		if err := accounts.Update(ctx, account); err != nil {
			return DepositResponse{}, core.WrapDependency("update account", err)
		}

		entry := domain.Entry{
			ID:          ids.NewID(),
			Kind:        domain.EntryDeposit,
			ToAccountID: account.ID,
			Amount:      req.Amount,
			RecordedAt:  now,
		}
		if err := ledger.Append(ctx, entry); err != nil {
			return DepositResponse{}, core.WrapDependency("append ledger entry", err)
		}

		return DepositResponse{Account: account, Entry: entry}, nil
	}
}

// WithdrawRequest debits an account by a positive amount in minor units.
type WithdrawRequest struct {
	AccountID string
	Amount    int64
}

// WithdrawResponse carries the updated account and the recorded entry.
type WithdrawResponse struct {
	Account domain.Account
	Entry   domain.Entry
}

// NewWithdraw builds the withdrawal operation. An insufficient balance is a
// business-rule failure, reported as domain.ErrConflict because it depends on
// the account's current state rather than on the request's shape.
func NewWithdraw(
	accounts ports.AccountRepository,
	ledger ports.LedgerRepository,
	ids ports.IDProvider,
	clk ports.Clock,
) core.Operation[WithdrawRequest, WithdrawResponse] {
	return func(ctx context.Context, req WithdrawRequest) (WithdrawResponse, error) {
		if err := validateMovement(req.AccountID, req.Amount); err != nil {
			return WithdrawResponse{}, err
		}

		account, err := accounts.Get(ctx, req.AccountID)
		if err != nil {
			return WithdrawResponse{}, core.WrapDependency("load account", err)
		}
		if account.Balance < req.Amount {
			return WithdrawResponse{}, fmt.Errorf("insufficient funds on account %s: %w",
				account.ID, domain.ErrConflict)
		}

		now := clk.Now()
		account.Balance -= req.Amount
		account.UpdatedAt = now

		if err := accounts.Update(ctx, account); err != nil {
			return WithdrawResponse{}, core.WrapDependency("update account", err)
		}

		entry := domain.Entry{
			ID:            ids.NewID(),
			Kind:          domain.EntryWithdraw,
			FromAccountID: account.ID,
			Amount:        req.Amount,
			RecordedAt:    now,
		}
		if err := ledger.Append(ctx, entry); err != nil {
			return WithdrawResponse{}, core.WrapDependency("append ledger entry", err)
		}

		return WithdrawResponse{Account: account, Entry: entry}, nil
	}
}

// TransferRequest moves a positive amount between two distinct accounts in
// the same currency.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        int64
}

// TransferResponse carries both updated accounts and the recorded entry.
type TransferResponse struct {
	From  domain.Account
	To    domain.Account
	Entry domain.Entry
}

// NewTransfer builds the transfer operation: a debit, a credit and a ledger
// entry that must land atomically. Any failure after the first write leaves
// the enclosing transaction to roll everything back.
func NewTransfer(
	accounts ports.AccountRepository,
	ledger ports.LedgerRepository,
	ids ports.IDProvider,
	clk ports.Clock,
) core.Operation[TransferRequest, TransferResponse] {
	return func(ctx context.Context, req TransferRequest) (TransferResponse, error) {
		if err := validateTransfer(req); err != nil {
			return TransferResponse{}, err
		}

		from, err := accounts.Get(ctx, req.FromAccountID)
		if err != nil {
			return TransferResponse{}, core.WrapDependency("load source account", err)
		}
		to, err := accounts.Get(ctx, req.ToAccountID)
		if err != nil {
			return TransferResponse{}, core.WrapDependency("load destination account", err)
		}

		if from.Currency != to.Currency {
			return TransferResponse{}, fmt.Errorf("currency mismatch %s/%s: %w",
				from.Currency, to.Currency, domain.ErrConflict)
		}
		if from.Balance < req.Amount {
			return TransferResponse{}, fmt.Errorf("insufficient funds on account %s: %w",
				from.ID, domain.ErrConflict)
		}
		if creditOverflows(to.Balance, req.Amount) {
			return TransferResponse{}, fmt.Errorf("balance overflow on account %s: %w",
				to.ID, domain.ErrConflict)
		}

		now := clk.Now()
		from.Balance -= req.Amount
		from.UpdatedAt = now
		to.Balance += req.Amount
		to.UpdatedAt = now

		if err := accounts.Update(ctx, from); err != nil {
			return TransferResponse{}, core.WrapDependency("debit source account", err)
		}
		if err := accounts.Update(ctx, to); err != nil {
			return TransferResponse{}, core.WrapDependency("credit destination account", err)
		}

		entry := domain.Entry{
			ID:            ids.NewID(),
			Kind:          domain.EntryTransfer,
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        req.Amount,
			RecordedAt:    now,
		}
		if err := ledger.Append(ctx, entry); err != nil {
			return TransferResponse{}, core.WrapDependency("append ledger entry", err)
		}

		return TransferResponse{From: from, To: to, Entry: entry}, nil
	}
}

// ListEntriesRequest asks for the ledger history of one account.
type ListEntriesRequest struct {
	AccountID string
}

// ListEntriesResponse carries entries oldest first.
type ListEntriesResponse struct {
	Entries []domain.Entry
}

// NewListEntries builds the ledger read operation.
func NewListEntries(ledger ports.LedgerRepository) core.Operation[ListEntriesRequest, ListEntriesResponse] {
	return func(ctx context.Context, req ListEntriesRequest) (ListEntriesResponse, error) {
		if strings.TrimSpace(req.AccountID) == "" {
			return ListEntriesResponse{}, &domain.ValidationError{
				Fields: map[string]string{"account_id": "must not be empty"},
			}
		}
		entries, err := ledger.ListByAccount(ctx, req.AccountID)
		if err != nil {
			return ListEntriesResponse{}, core.WrapDependency("list ledger entries", err)
		}
		return ListEntriesResponse{Entries: entries}, nil
	}
}

// creditOverflows reports whether crediting amount would wrap the balance
// past the int64 ceiling. Amounts are validated positive before this runs.
func creditOverflows(balance, amount int64) bool {
	return balance > math.MaxInt64-amount
}

func validateMovement(accountID string, amount int64) error {
	fields := make(map[string]string)
	if strings.TrimSpace(accountID) == "" {
		fields["account_id"] = "must not be empty"
	}
	if amount <= 0 {
		fields["amount"] = "must be positive"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func validateTransfer(req TransferRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.FromAccountID) == "" {
		fields["from_account_id"] = "must not be empty"
	}
	if strings.TrimSpace(req.ToAccountID) == "" {
		fields["to_account_id"] = "must not be empty"
	}
	if req.FromAccountID != "" && req.FromAccountID == req.ToAccountID {
		fields["to_account_id"] = "must differ from from_account_id"
	}
	if req.Amount <= 0 {
		fields["amount"] = "must be positive"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
