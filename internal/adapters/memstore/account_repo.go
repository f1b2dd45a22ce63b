package memstore

import (
	"context"
	"fmt"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// Compile-time interface check.
var _ ports.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implements ports.AccountRepository against a Store. When the
// execution context carries a handle for this store, reads and writes go
// through the transaction's overlay; otherwise each write autocommits.
type AccountRepo struct {
	store *Store
}

// NewAccountRepo creates an account repository over the given store.
func NewAccountRepo(store *Store) *AccountRepo {
	return &AccountRepo{store: store}
}

// Insert stores a new account. Returns domain.ErrConflict if the ID is
// already taken.
func (r *AccountRepo) Insert(ctx context.Context, account domain.Account) error {
	tx, err := r.tx(ctx)
	if err != nil {
		return err
	}

	if tx != nil {
		if _, exists := tx.getAccount(account.ID); exists {
			return fmt.Errorf("account %s: %w", account.ID, domain.ErrConflict)
		}
		tx.stageAccount(account)
		return nil
	}

	if _, _, exists := r.store.getAccount(account.ID); exists {
		return fmt.Errorf("account %s: %w", account.ID, domain.ErrConflict)
	}
	r.store.putAccount(account)
	return nil
}

// Get returns the account with the given ID, or domain.ErrNotFound.
func (r *AccountRepo) Get(ctx context.Context, id string) (domain.Account, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	if tx != nil {
		if account, ok := tx.getAccount(id); ok {
			return account, nil
		}
		return domain.Account{}, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}

	if account, _, ok := r.store.getAccount(id); ok {
		return account, nil
	}
	return domain.Account{}, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
}

// FindByOwner returns the account held by owner in the given currency.
func (r *AccountRepo) FindByOwner(ctx context.Context, owner, currency string) (domain.Account, bool, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return domain.Account{}, false, err
	}

	if tx != nil {
		account, ok := tx.findByOwner(owner, currency)
		return account, ok, nil
	}

	account, _, ok := r.store.findByOwner(owner, currency)
	return account, ok, nil
}

// Update overwrites an existing account. Returns domain.ErrNotFound if the
// account does not exist.
func (r *AccountRepo) Update(ctx context.Context, account domain.Account) error {
	tx, err := r.tx(ctx)
	if err != nil {
		return err
	}

	if tx != nil {
		if _, ok := tx.getAccount(account.ID); !ok {
			return fmt.Errorf("account %s: %w", account.ID, domain.ErrNotFound)
		}
		tx.stageAccount(account)
		return nil
	}

	if _, _, ok := r.store.getAccount(account.ID); !ok {
		return fmt.Errorf("account %s: %w", account.ID, domain.ErrNotFound)
	}
	r.store.putAccount(account)
	return nil
}

// List returns all accounts ordered by creation time.
func (r *AccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	if tx != nil {
		return tx.listAccounts(), nil
	}
	return r.store.listAccounts(), nil
}

// tx resolves the active handle for this store from the execution context.
// A nil result with nil error means autocommit. The ctx.Err check keeps
// every repository call responsive to cancellation.
func (r *AccountRepo) tx(ctx context.Context) (*Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handle, ok := core.TxFromContext(ctx, sourceName)
	if !ok {
		return nil, nil
	}
	tx, ok := handle.(*Tx)
	if !ok {
		return nil, fmt.Errorf("memstore: foreign transaction handle %T", handle)
	}
	return tx, nil
}
