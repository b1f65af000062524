package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/adapter/http/dto"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
)

// ChargeService defines the behavior needed by ChargeHandler.
type ChargeService interface {
	RecordCharge(ctx context.Context, input usecase.RecordChargeInput) (*domain.Transaction, error)
}

// ChargeHandler handles invoice charge requests.
type ChargeHandler struct {
	chargeUC ChargeService
}

// NewChargeHandler creates a new ChargeHandler.
func NewChargeHandler(chargeUC ChargeService) *ChargeHandler {
	return &ChargeHandler{chargeUC: chargeUC}
}

// Record appends an invoice charge to an account's ledger.
func (h *ChargeHandler) Record(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.RecordChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.chargeUC.RecordCharge(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeDomainError(w, err, "failed to record charge")
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}
