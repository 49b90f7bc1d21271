package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
)

var errUnauthorized = errors.New("unauthorized")

type errorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Structured
// errors carry enough detail for an actionable message; anything unknown is
// a store or programming failure, logged and surfaced opaquely.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.BookingConflictError
		transitionErr *domain.InvalidTransitionError
		pricingErr    *domain.PricingError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Code: "validation_error", Message: validationErr.Error(),
			Details: map[string]interface{}{"field": validationErr.Field},
		}})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorBody{
			Code: "booking_conflict", Message: conflictErr.Error(),
			Details: map[string]interface{}{
				"conflicting_start": conflictErr.Start.Format(domain.DateLayout),
				"conflicting_end":   conflictErr.End.Format(domain.DateLayout),
			},
		}})
	case errors.As(err, &transitionErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorBody{
			Code: "invalid_transition", Message: transitionErr.Error(),
			Details: map[string]interface{}{
				"from": string(transitionErr.From),
				"to":   string(transitionErr.To),
			},
		}})
	case errors.As(err, &pricingErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Code: "pricing_error", Message: pricingErr.Error(),
		}})
	case errors.Is(err, domain.ErrCarUnavailable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorBody{
			Code: "car_unavailable", Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrAlreadyPaid):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorBody{
			Code: "already_paid", Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrNoPendingVerification):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorBody{
			Code: "no_pending_verification", Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorBody{
			Code: "conflict", Message: "a concurrent update won, retry the request",
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errorBody{
			Code: "not_found", Message: "resource not found",
		}})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: errorBody{
			Code: "forbidden", Message: "not allowed",
		}})
	case errors.Is(err, errUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errorBody{
			Code: "unauthorized", Message: "missing or invalid credentials",
		}})
	default:
		logger.WithRequest(RequestIDFromContext(r.Context())).Error("Internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{
			Code: "internal", Message: "internal error",
		}})
	}
}
