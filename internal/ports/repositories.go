package ports

import (
	"context"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
)

// AccountRepository is the persistence port for accounts. Implementations
// resolve the active transactional handle from the execution context via
// core.TxFromContext and fall back to autocommit when none is attached.
//
// Write methods return domain.ErrNotFound or domain.ErrConflict for
// rule-level failures; infrastructure failures are returned as-is for the
// caller to wrap with the failing step.
type AccountRepository interface {
	// Insert stores a new account. Returns domain.ErrConflict if the ID is
	// already taken.
	Insert(ctx context.Context, account domain.Account) error

	// Get returns the account with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (domain.Account, error)

	// FindByOwner returns the account held by owner in the given currency.
	// Absence is a valid case reported via ok, not an error.
	FindByOwner(ctx context.Context, owner, currency string) (domain.Account, bool, error)

	// Update overwrites an existing account. Returns domain.ErrNotFound if
	// the account does not exist.
	Update(ctx context.Context, account domain.Account) error

	// List returns all accounts ordered by creation time.
	List(ctx context.Context) ([]domain.Account, error)
}

// LedgerRepository is the persistence port for ledger entries.
type LedgerRepository interface {
	// Append stores a new entry. Entries are immutable once written.
	Append(ctx context.Context, entry domain.Entry) error

	// ListByAccount returns entries that reference the given account,
	// oldest first.
	ListByAccount(ctx context.Context, accountID string) ([]domain.Entry, error)
}
