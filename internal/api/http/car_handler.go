package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/service"
)

type CarHandler struct {
	cars service.CarService
}

func NewCarHandler(cars service.CarService) *CarHandler {
	return &CarHandler{cars: cars}
}

type createCarRequest struct {
	Name               string `json:"name"`
	Plate              string `json:"plate"`
	DailyRateCents     int32  `json:"daily_rate_cents"`
	InsuranceRateCents int32  `json:"insurance_rate_cents"`
}

func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFromContext(r.Context())

	var req createCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	car := &domain.Car{
		Name:               req.Name,
		Plate:              req.Plate,
		DailyRateCents:     req.DailyRateCents,
		InsuranceRateCents: req.InsuranceRateCents,
	}
	created, err := h.cars.CreateCar(r.Context(), actor.ID, car)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.cars.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

type carListResponse struct {
	Cars  []domain.Car `json:"cars"`
	Total int32        `json:"total"`
}

func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("shop_id")
	shopID, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || shopID <= 0 {
		writeError(w, r, &domain.ValidationError{Field: "shop_id", Reason: "must be a positive integer"})
		return
	}
	page, pageSize := pagination(r)

	cars, total, err := h.cars.ListCars(r.Context(), int32(shopID), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if cars == nil {
		cars = []domain.Car{}
	}
	writeJSON(w, http.StatusOK, carListResponse{Cars: cars, Total: total})
}

type setCarStatusRequest struct {
	Status string `json:"status"`
}

func (h *CarHandler) SetCarStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := PrincipalFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req setCarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	target := domain.CarStatus(req.Status)
	if !target.Valid() {
		writeError(w, r, &domain.ValidationError{Field: "status", Reason: "unknown car status"})
		return
	}

	car, err := h.cars.SetCarStatus(r.Context(), actor.ID, id, target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}
