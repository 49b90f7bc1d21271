package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"

	"github.com/gorilla/mux"
)

type RentalHandler struct {
	booking   service.BookingService
	lifecycle service.LifecycleService
}

func NewRentalHandler(booking service.BookingService, lifecycle service.LifecycleService) *RentalHandler {
	return &RentalHandler{booking: booking, lifecycle: lifecycle}
}

type createBookingRequest struct {
	CarID     int32  `json:"car_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *RentalHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFromContext(r.Context())

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if req.CarID <= 0 {
		writeError(w, r, &domain.ValidationError{Field: "car_id", Reason: "is required"})
		return
	}
	start, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		writeError(w, r, &domain.ValidationError{Field: "start_date", Reason: "expected yyyy-mm-dd"})
		return
	}
	end, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		writeError(w, r, &domain.ValidationError{Field: "end_date", Reason: "expected yyyy-mm-dd"})
		return
	}

	rt, err := h.booking.CreateBooking(r.Context(), actor.ID, req.CarID, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rt, err := h.booking.GetRental(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type rentalListResponse struct {
	Rentals []domain.Rental `json:"rentals"`
	Total   int32           `json:"total"`
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFromContext(r.Context())

	status := domain.RentalStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, r, &domain.ValidationError{Field: "status", Reason: "unknown rental status"})
		return
	}
	page, pageSize := pagination(r)

	rentals, total, err := h.booking.ListRentals(r.Context(), actor, status, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	writeJSON(w, http.StatusOK, rentalListResponse{Rentals: rentals, Total: total})
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (h *RentalHandler) TransitionRental(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	target := domain.RentalStatus(req.Status)
	if !target.Valid() {
		writeError(w, r, &domain.ValidationError{Field: "status", Reason: "unknown rental status"})
		return
	}

	result, err := h.lifecycle.Transition(r.Context(), actor, id, target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return int32(id), nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}
