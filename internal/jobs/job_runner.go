package jobs

import (
	"database/sql"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db        *sql.DB
	lifecycle service.LifecycleService
	config    *config.Config
}

func NewJobRunner(db *sql.DB, lifecycle service.LifecycleService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:        db,
		lifecycle: lifecycle,
		config:    cfg,
	}
}

// Config exposes the configuration for the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ActivateDueRentals()
	jr.ReconcileCarStatus()
}
