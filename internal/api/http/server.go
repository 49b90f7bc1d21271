package http

import (
	"database/sql"
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/security"
	"drivehub-backend/internal/service"
	"drivehub-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router serves.
type Handlers struct {
	Rentals  *RentalHandler
	Payments *PaymentHandler
	Cars     *CarHandler
	Evidence *EvidenceHandler
}

func NewHandlers(
	booking service.BookingService,
	lifecycle service.LifecycleService,
	payments service.PaymentService,
	cars service.CarService,
	evidence storage.EvidenceStore,
	maxUploadMB int64,
) *Handlers {
	return &Handlers{
		Rentals:  NewRentalHandler(booking, lifecycle),
		Payments: NewPaymentHandler(payments),
		Cars:     NewCarHandler(cars),
		Evidence: NewEvidenceHandler(evidence, maxUploadMB),
	}
}

// NewRouter wires the full HTTP surface. Car reads are public; everything
// else requires an authenticated principal, with role gates on the
// endpoints that only make sense for one side of the marketplace.
func NewRouter(tm security.TokenManager, h *Handlers, db *sql.DB) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, LoggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public browse surface.
	api.HandleFunc("/cars", h.Cars.ListCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}", h.Cars.GetCar).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tm))

	customerOnly := RequireRole(domain.RoleCustomer)
	shopOnly := RequireRole(domain.RoleShop)

	authed.Handle("/rentals", customerOnly(http.HandlerFunc(h.Rentals.CreateBooking))).Methods(http.MethodPost)
	authed.HandleFunc("/rentals", h.Rentals.ListRentals).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}", h.Rentals.GetRental).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}/status", h.Rentals.TransitionRental).Methods(http.MethodPost)

	authed.Handle("/rentals/{id:[0-9]+}/payment/proof", customerOnly(http.HandlerFunc(h.Payments.SubmitProof))).Methods(http.MethodPost)
	authed.Handle("/rentals/{id:[0-9]+}/payment/verify", shopOnly(http.HandlerFunc(h.Payments.VerifyPayment))).Methods(http.MethodPost)

	authed.Handle("/cars", shopOnly(http.HandlerFunc(h.Cars.CreateCar))).Methods(http.MethodPost)
	authed.Handle("/cars/{id:[0-9]+}/status", shopOnly(http.HandlerFunc(h.Cars.SetCarStatus))).Methods(http.MethodPost)

	authed.Handle("/evidence", customerOnly(http.HandlerFunc(h.Evidence.Upload))).Methods(http.MethodPut)
	authed.HandleFunc("/evidence/{key}", h.Evidence.Download).Methods(http.MethodGet)

	return router
}
