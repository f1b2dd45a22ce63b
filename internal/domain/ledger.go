package domain

import "time"

// EntryKind classifies a ledger entry by the movement it records.
type EntryKind string

const (
	EntryDeposit  EntryKind = "deposit"
	EntryWithdraw EntryKind = "withdraw"
	EntryTransfer EntryKind = "transfer"
)

// Entry is an immutable ledger record written in the same unit of work as the
// balance change it describes. For deposits and withdrawals only one of
// FromAccountID/ToAccountID is set; transfers set both.
type Entry struct {
	ID            string
	Kind          EntryKind
	FromAccountID string
	ToAccountID   string
	Amount        int64
	RecordedAt    time.Time
}
