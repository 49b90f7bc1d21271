package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/jobs"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/notify"
	"drivehub-backend/internal/repository/postgres"
	"drivehub-backend/internal/scheduler"
	"drivehub-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.Bool("run-once", false, "Run all nightly jobs once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveHub cron runner...")

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	var notifier service.Notifier = notify.NoopNotifier{}
	if cfg.SendGrid.APIKey != "" {
		notifier = notify.NewSendGridNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, store.ContactRepository)
	}

	lifecycleSvc := service.NewLifecycleService(store.RentalRepository, store.CarRepository, notifier)
	jobRunner := jobs.NewJobRunner(db, lifecycleSvc, cfg)

	if *runOnce {
		logger.Info("Running all nightly jobs once")
		jobRunner.RunAllNightlyJobs()
		logger.Info("Nightly jobs finished")
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received shutdown signal", "signal", sig.String())

	sched.Stop()
}
