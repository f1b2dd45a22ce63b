package memstore

import (
	"context"
	"fmt"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// Compile-time interface check.
var _ ports.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implements ports.LedgerRepository against a Store, following
// the same transaction-or-autocommit resolution as AccountRepo.
type LedgerRepo struct {
	store *Store
}

// NewLedgerRepo creates a ledger repository over the given store.
func NewLedgerRepo(store *Store) *LedgerRepo {
	return &LedgerRepo{store: store}
}

// Append stores a new entry.
func (r *LedgerRepo) Append(ctx context.Context, entry domain.Entry) error {
	tx, err := r.tx(ctx)
	if err != nil {
		return err
	}

	if tx != nil {
		tx.stageEntry(entry)
		return nil
	}
	r.store.appendEntry(entry)
	return nil
}

// ListByAccount returns entries referencing the account, oldest first.
func (r *LedgerRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.Entry, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	if tx != nil {
		return tx.listEntries(accountID), nil
	}
	return r.store.listEntries(accountID), nil
}

func (r *LedgerRepo) tx(ctx context.Context) (*Tx, error) {
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
