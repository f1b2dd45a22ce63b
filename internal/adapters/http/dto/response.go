// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
)

// AccountResponse represents a single account in HTTP responses. The balance
// is in minor units of the currency.
type AccountResponse struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	Currency  string `json:"currency"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AccountListResponse represents a list of accounts in HTTP responses.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Count    int               `json:"count"`
}

// ToAccountResponse converts a domain Account to an HTTP response DTO.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Owner:     a.Owner,
		Currency:  a.Currency,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// ToAccountListResponse converts a slice of domain Accounts to an HTTP list
// response DTO.
func ToAccountListResponse(accounts []domain.Account) AccountListResponse {
	items := make([]AccountResponse, len(accounts))
	for i := range accounts {
		items[i] = ToAccountResponse(accounts[i])
	}
	return AccountListResponse{
		Accounts: items,
		Count:    len(items),
	}
}

// EntryResponse represents a single ledger entry in HTTP responses.
type EntryResponse struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	FromAccountID string `json:"from_account_id,omitempty"`
	ToAccountID   string `json:"to_account_id,omitempty"`
	Amount        int64  `json:"amount"`
	RecordedAt    string `json:"recorded_at"`
}

// EntryListResponse represents an account's ledger history in HTTP responses.
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Count   int             `json:"count"`
}

// ToEntryResponse converts a domain Entry to an HTTP response DTO.
func ToEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		Kind:          string(e.Kind),
		FromAccountID: e.FromAccountID,
		ToAccountID:   e.ToAccountID,
		Amount:        e.Amount,
		RecordedAt:    e.RecordedAt.Format(time.RFC3339),
	}
}

// ToEntryListResponse converts a slice of domain Entries to an HTTP list
// response DTO.
func ToEntryListResponse(entries []domain.Entry) EntryListResponse {
	items := make([]EntryResponse, len(entries))
	for i := range entries {
		items[i] = ToEntryResponse(entries[i])
	}
	return EntryListResponse{
		Entries: items,
		Count:   len(items),
	}
}

// MovementResponse represents the outcome of a deposit or withdrawal.
type MovementResponse struct {
	Account AccountResponse `json:"account"`
	Entry   EntryResponse   `json:"entry"`
}

// TransferResponse represents the outcome of a transfer.
type TransferResponse struct {
	From  AccountResponse `json:"from"`
	To    AccountResponse `json:"to"`
	Entry EntryResponse   `json:"entry"`
}
