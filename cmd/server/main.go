package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "drivehub-backend/internal/api/http"
	"drivehub-backend/internal/config"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/notify"
	"drivehub-backend/internal/repository/postgres"
	"drivehub-backend/internal/security"
	"drivehub-backend/internal/service"
	"drivehub-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveHub backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	evidenceStore, err := storage.NewLocalEvidenceStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize evidence store", "error", err)
		log.Fatalf("Failed to initialize evidence store: %v", err)
	}

	var notifier service.Notifier = notify.NoopNotifier{}
	if cfg.SendGrid.APIKey != "" {
		logger.Info("Email notifications enabled", "from", cfg.SendGrid.FromEmail)
		notifier = notify.NewSendGridNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, store.ContactRepository)
	} else {
		logger.Info("No SendGrid key configured, notifications disabled")
	}

	bookingSvc := service.NewBookingService(store.RentalRepository, store.CarRepository, notifier)
	lifecycleSvc := service.NewLifecycleService(store.RentalRepository, store.CarRepository, notifier)
	paymentSvc := service.NewPaymentService(store.PaymentRepository, store.RentalRepository, notifier)
	carSvc := service.NewCarService(store.CarRepository, store.RentalRepository)

	handlers := httpapi.NewHandlers(bookingSvc, lifecycleSvc, paymentSvc, carSvc, evidenceStore, cfg.Storage.MaxFileSize)
	router := httpapi.NewRouter(tokenManager, handlers, db)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
