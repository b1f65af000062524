package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/adapter/http/dto"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
)

// ReconcileService defines the behavior needed by ReceiptHandler.
type ReconcileService interface {
	ReconcileFromLedger(ctx context.Context, accountID string, target usecase.PaymentRef, fallback usecase.BalancePair) usecase.BalancePair
	VerifyProjection(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// ReceiptAccountReader reads accounts for receipt assembly.
type ReceiptAccountReader interface {
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

// ReceiptHandler rebuilds print snapshots for historical payments and
// reports projection drift.
type ReceiptHandler struct {
	accounts    ReceiptAccountReader
	reconcileUC ReconcileService
	receipts    *usecase.ReceiptBuilder
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(accounts ReceiptAccountReader, reconcileUC ReconcileService, receipts *usecase.ReceiptBuilder) *ReceiptHandler {
	return &ReceiptHandler{
		accounts:    accounts,
		reconcileUC: reconcileUC,
		receipts:    receipts,
	}
}

// Build rebuilds a receipt for a past payment. The balance pair comes
// from the ledger when the payment can be located there; otherwise the
// account's current snapshot serves, so printing never fails on an
// ambiguous lookup.
func (h *ReceiptHandler) Build(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.BuildReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "invalid amount", domain.ErrInvalidAmount.Error())
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err, "failed to get account")
		return
	}

	target := req.ToPaymentRef()
	balances := h.reconcileUC.ReconcileFromLedger(r.Context(), accountID, target, fallbackPair(account, target.Amount))
	receipt := h.receipts.FromReconciliation(account, target, balances)

	writeJSON(w, http.StatusOK, dto.ReceiptFromDomain(receipt))
}

// Drift reports the divergence between the account record's balance and
// the latest ledger snapshot.
func (h *ReceiptHandler) Drift(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	drift, err := h.reconcileUC.VerifyProjection(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err, "failed to verify balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.DriftResponse{
		AccountID: accountID,
		Drift:     drift,
		Converged: drift.IsZero(),
	})
}

// fallbackPair derives the balance pair from the account record alone,
// reversing the payment's effect to estimate the pre-payment magnitude.
func fallbackPair(account *domain.Account, amount decimal.Decimal) usecase.BalancePair {
	return usecase.BalancePair{
		Previous: account.SignedBalance().Sub(amount).Abs(),
		New:      account.BalanceMagnitude,
		NewSign:  account.BalanceSign,
	}
}
