package dto

import (
	"strings"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/domain"
)

const (
	msgRequired     = "is required"
	msgMustPositive = "must be positive"
)

// CreateAccountRequest represents the JSON body for opening a new account.
type CreateAccountRequest struct {
	Owner    string `json:"owner"`
	Currency string `json:"currency"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateAccountRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Owner) == "" {
		fields["owner"] = msgRequired
	}
	if strings.TrimSpace(r.Currency) == "" {
		fields["currency"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// MovementRequest represents the JSON body for a deposit or withdrawal.
// Amounts are in minor units of the account's currency.
type MovementRequest struct {
	Amount int64 `json:"amount"`
}

// Validate checks that the amount is positive.
// Returns a *domain.ValidationError if any checks fail.
func (r *MovementRequest) Validate() error {
	if r.Amount <= 0 {
		return &domain.ValidationError{
			Fields: map[string]string{"amount": msgMustPositive},
		}
	}
	return nil
}

// TransferRequest represents the JSON body for moving money from the account
// in the URL to the named destination account.
type TransferRequest struct {
	ToAccountID string `json:"to_account_id"`
	Amount      int64  `json:"amount"`
}

// Validate checks that required fields are present and the amount is
// positive. Returns a *domain.ValidationError if any checks fail.
func (r *TransferRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.ToAccountID) == "" {
		fields["to_account_id"] = msgRequired
	}
	if r.Amount <= 0 {
		fields["amount"] = msgMustPositive
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
