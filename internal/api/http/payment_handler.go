package http

import (
	"encoding/json"
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type submitProofRequest struct {
	EvidenceRef string `json:"evidence_ref"`
}

func (h *PaymentHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req submitProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	p, err := h.payments.SubmitProof(r.Context(), actor.ID, id, req.EvidenceRef)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type verifyRequest struct {
	Approve *bool `json:"approve"`
}

func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if req.Approve == nil {
		writeError(w, r, &domain.ValidationError{Field: "approve", Reason: "is required"})
		return
	}

	result, err := h.payments.Verify(r.Context(), actor.ID, id, *req.Approve)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
