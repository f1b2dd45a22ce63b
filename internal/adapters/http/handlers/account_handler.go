package handlers

import (
	"net/http"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/adapters/http/dto"
	"github.com/mirzaakhena/cug-prompt-instructions/internal/app"
)

// AccountHandler binds the account routes to the wired operations. Each
// handler invokes one assembled operation; the middleware stack around it is
// invisible from here.
type AccountHandler struct {
	ops *app.Operations
}

// NewAccountHandler creates a new AccountHandler over the assembled
// operations.
func NewAccountHandler(ops *app.Operations) *AccountHandler {
	return &AccountHandler{ops: ops}
}

// CreateAccount handles POST /accounts.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.ops.CreateAccount(r.Context(), app.CreateAccountRequest{
		Owner:    req.Owner,
		Currency: req.Currency,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToAccountResponse(res.Account))
}

// GetAccount handles GET /accounts/{id}.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	res, err := h.ops.GetAccount(r.Context(), app.GetAccountRequest{AccountID: id})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	resp := dto.ToAccountResponse(res.Account)
	writeJSON(w, http.StatusOK, struct {
		dto.AccountResponse
		Entries []dto.EntryResponse `json:"entries,omitempty"`
	}{
		AccountResponse: resp,
		Entries:         dto.ToEntryListResponse(res.Entries).Entries,
	})
}

// ListAccounts handles GET /accounts.
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	res, err := h.ops.ListAccounts(r.Context(), app.ListAccountsRequest{})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAccountListResponse(res.Accounts))
}

// ListEntries handles GET /accounts/{id}/entries.
func (h *AccountHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	res, err := h.ops.ListEntries(r.Context(), app.ListEntriesRequest{AccountID: id})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEntryListResponse(res.Entries))
}

// Deposit handles POST /accounts/{id}/deposits.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.MovementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.ops.Deposit(r.Context(), app.DepositRequest{
		AccountID: id,
		Amount:    req.Amount,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementResponse{
		Account: dto.ToAccountResponse(res.Account),
		Entry:   dto.ToEntryResponse(res.Entry),
	})
}

// Withdraw handles POST /accounts/{id}/withdrawals.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.MovementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.ops.Withdraw(r.Context(), app.WithdrawRequest{
		AccountID: id,
		Amount:    req.Amount,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementResponse{
		Account: dto.ToAccountResponse(res.Account),
		Entry:   dto.ToEntryResponse(res.Entry),
	})
}

// Transfer handles POST /accounts/{id}/transfers.
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.TransferRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.ops.Transfer(r.Context(), app.TransferRequest{
		FromAccountID: id,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferResponse{
		From:  dto.ToAccountResponse(res.From),
		To:    dto.ToAccountResponse(res.To),
		Entry: dto.ToEntryResponse(res.Entry),
	})
}
