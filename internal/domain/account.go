package domain

import (
	"strings"
	"time"
)

// Account is a balance-holding entity. Balance is kept in minor currency
// units (cents) to avoid floating point drift.
type Account struct {
	ID        string
	Owner     string
	Currency  string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// currencyCodeLength is the ISO 4217 alphabetic code length.
const currencyCodeLength = 3

// maxOwnerLength bounds the owner name to keep storage and logs sane.
const maxOwnerLength = 100

// Validate checks the account's own fields. It performs no I/O; uniqueness
// against existing accounts is a business-rule check owned by the operation
// that creates the account.
func (a *Account) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(a.Owner) == "" {
		fields["owner"] = "must not be empty"
	} else if len(a.Owner) > maxOwnerLength {
		fields["owner"] = "must be at most 100 characters"
	}

	if !validCurrency(a.Currency) {
		fields["currency"] = "must be a 3-letter uppercase code"
	}

	if a.Balance < 0 {
		fields["balance"] = "must not be negative"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validCurrency(code string) bool {
	if len(code) != currencyCodeLength {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
