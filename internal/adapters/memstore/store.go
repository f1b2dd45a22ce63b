// Package memstore is the in-memory persistence adapter. It implements the
// transactional resource provider consumed by the Transaction middleware and
// the account/ledger repository ports consumed by operations.
//
// Transactions are copy-on-write: writes are staged in a per-transaction
// overlay and applied to the base maps on Commit under the store lock.
// Commit uses optimistic concurrency — every account the transaction read or
// wrote is version-checked, and a conflicting concurrent commit fails the
// transaction with a transient error so an outer Retry layer can re-run it
// in a fresh unit of work.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/core"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// sourceName identifies this backing store in the execution context. All
// repositories in this package resolve handles under this name.
const sourceName = "memstore"

// ErrWriteConflict is returned (marked transient) when a commit loses an
// optimistic concurrency race with a concurrent transaction.
var ErrWriteConflict = errors.New("memstore: write conflict")

// Compile-time interface checks.
var (
	_ core.TxProvider     = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Store holds the base state. It is a shared singleton, safe for concurrent
// use; per-request isolation lives in Tx, never here.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	versions map[string]uint64
	entries  []domain.Entry
}

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		versions: make(map[string]uint64),
	}
}

// Source implements core.TxProvider.
func (s *Store) Source() string { return sourceName }

// Begin opens a new unit of work. Safe for concurrent use; every call
// returns an independent handle.
func (s *Store) Begin(ctx context.Context) (core.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{
		store:        s,
		accounts:     make(map[string]domain.Account),
		readVersions: make(map[string]uint64),
	}, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return sourceName }

// HealthCheck reports the store as healthy whenever it is reachable; an
// in-memory store has no connection to lose.
func (s *Store) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// getAccount returns the committed account and its version.
func (s *Store) getAccount(id string) (domain.Account, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	return account, s.versions[id], ok
}

// findByOwner scans committed accounts for an owner/currency pair.
func (s *Store) findByOwner(owner, currency string) (domain.Account, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, account := range s.accounts {
		if account.Owner == owner && account.Currency == currency {
			return account, s.versions[id], true
		}
	}
	return domain.Account{}, 0, false
}

// listAccounts returns committed accounts ordered by creation time.
func (s *Store) listAccounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	sortAccounts(accounts)
	return accounts
}

// putAccount applies a single autocommit write outside any transaction.
func (s *Store) putAccount(account domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = account
	s.versions[account.ID]++
}

// appendEntry applies a single autocommit ledger write.
func (s *Store) appendEntry(entry domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

// listEntries returns committed entries referencing the account, oldest
// first. Entries are appended in commit order, so no re-sort is needed.
func (s *Store) listEntries(accountID string) []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []domain.Entry
	for _, e := range s.entries {
		if e.FromAccountID == accountID || e.ToAccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries
}

func sortAccounts(accounts []domain.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID < accounts[j].ID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
}
