package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/adapter/http/dto"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	SubmitPayment(ctx context.Context, input usecase.SubmitPaymentInput) (*usecase.PaymentResult, error)
}

// PaymentHandler handles payment submission requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Submit records a payment against an account. Submitting the same
// payload twice records two ledger entries; retries are the caller's
// responsibility to guard.
func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.SubmitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.paymentUC.SubmitPayment(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeDomainError(w, err, "failed to record payment")
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromResult(result))
}
