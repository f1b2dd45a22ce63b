package memstore

import (
	"context"
	"errors"
	"sync"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
)

// ErrTxDone is returned when a terminal action is applied to a handle that
// has already been committed or rolled back.
var ErrTxDone = errors.New("memstore: transaction already terminated")

// Compile-time interface check.
var _ core.Tx = (*Tx)(nil)

// Tx is one unit of work: a copy-on-write overlay over the store's base
// state. It is exclusively owned by the Transaction middleware invocation
// that opened it; repositories borrow it through the execution context.
//
// The mutex only guards the done flag — a handle is never shared across
// concurrently executing operation invocations, so the overlay itself needs
// no locking.
type Tx struct {
	store *Store

	accounts     map[string]domain.Account
	readVersions map[string]uint64
	entries      []domain.Entry

	mu   sync.Mutex
	done bool
}

// Commit applies the overlay to the base state. Before applying, every
// account this transaction read or wrote is checked against its committed
// version; if a concurrent transaction got there first, Commit fails with a
// transient ErrWriteConflict and applies nothing. Either way the handle is
// terminated and must not be reused.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.terminate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for id, version := range t.readVersions {
		if t.store.versions[id] != version {
			return core.Transient(ErrWriteConflict)
		}
	}

	for id, account := range t.accounts {
		t.store.accounts[id] = account
		t.store.versions[id]++
	}
	t.store.entries = append(t.store.entries, t.entries...)

	return nil
}

// Rollback discards the overlay. The handle is terminated and must not be
// reused.
func (t *Tx) Rollback(_ context.Context) error {
	if err := t.terminate(); err != nil {
		return err
	}
	t.accounts = nil
	t.readVersions = nil
	t.entries = nil
	return nil
}

// terminate enforces the single-terminal-action discipline.
func (t *Tx) terminate() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	t.done = true
	return nil
}

// getAccount reads through the overlay to the base state, recording the
// version of base reads for the commit-time conflict check.
func (t *Tx) getAccount(id string) (domain.Account, bool) {
	if account, ok := t.accounts[id]; ok {
		return account, true
	}
	account, version, ok := t.store.getAccount(id)
	if ok {
		t.noteVersion(id, version)
	}
	return account, ok
}

// findByOwner prefers staged accounts over base state so a transaction sees
// its own writes.
func (t *Tx) findByOwner(owner, currency string) (domain.Account, bool) {
	for _, account := range t.accounts {
		if account.Owner == owner && account.Currency == currency {
			return account, true
		}
	}
	account, version, ok := t.store.findByOwner(owner, currency)
	if ok {
		t.noteVersion(account.ID, version)
	}
	return account, ok
}

// listAccounts merges staged accounts over the base listing.
func (t *Tx) listAccounts() []domain.Account {
	merged := make(map[string]domain.Account)
	for _, account := range t.store.listAccounts() {
		merged[account.ID] = account
	}
	for id, account := range t.accounts {
		merged[id] = account
	}
	accounts := make([]domain.Account, 0, len(merged))
	for _, account := range merged {
		accounts = append(accounts, account)
	}
	sortAccounts(accounts)
	return accounts
}

// stageAccount records an upsert in the overlay. The account's current
// committed version is noted so a concurrent writer is detected at commit.
func (t *Tx) stageAccount(account domain.Account) {
	if _, noted := t.readVersions[account.ID]; !noted {
		_, version, _ := t.store.getAccount(account.ID)
		t.noteVersion(account.ID, version)
	}
	t.accounts[account.ID] = account
}

// stageEntry records a ledger append in the overlay.
func (t *Tx) stageEntry(entry domain.Entry) {
	t.entries = append(t.entries, entry)
}

// listEntries merges staged entries after the committed ones.
func (t *Tx) listEntries(accountID string) []domain.Entry {
	entries := t.store.listEntries(accountID)
	for _, e := range t.entries {
		if e.FromAccountID == accountID || e.ToAccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries
}

// noteVersion records the first observed version per account; later
// observations within the same transaction are ignored.
func (t *Tx) noteVersion(id string, version uint64) {
	if _, ok := t.readVersions[id]; !ok {
		t.readVersions[id] = version
	}
}
