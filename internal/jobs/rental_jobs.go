package jobs

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
)

// ActivateDueRentals moves CONFIRMED rentals whose start date has arrived to
// ONGOING. It goes through the lifecycle service so the transition runs the
// same state machine, projector and atomic unit as the endpoint does.
func (jr *JobRunner) ActivateDueRentals() {
	jr.runWithRecovery("ActivateDueRentals", func() {
		ctx := context.Background()

		rows, err := jr.db.QueryContext(ctx,
			`SELECT id FROM rentals WHERE status = $1 AND start_date <= $2`,
			domain.RentalStatusConfirmed, time.Now().Format(domain.DateLayout))
		if err != nil {
			logger.Error("Failed to list due rentals", "error", err)
			return
		}
		defer rows.Close()

		var ids []int32
		for rows.Next() {
			var id int32
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan due rental", "error", err)
				continue
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating due rentals", "error", err)
			return
		}

		system := domain.Actor{Role: domain.RoleSystem}
		activated := 0
		for _, id := range ids {
			if _, err := jr.lifecycle.Transition(ctx, system, id, domain.RentalStatusOngoing); err != nil {
				// A lost race just means someone else moved it first.
				logger.Warn("Failed to activate rental", "rental_id", id, "error", err)
				continue
			}
			activated++
		}
		logger.Info("Activated due rentals", "count", activated)
	})
}

// ReconcileCarStatus repairs drift in the cached car availability flag. The
// rental set is authoritative: a car is RENTED exactly while a CONFIRMED or
// ONGOING rental holds it.
func (jr *JobRunner) ReconcileCarStatus() {
	jr.runWithRecovery("ReconcileCarStatus", func() {
		ctx := context.Background()

		freed, err := jr.exec(ctx, `
			UPDATE cars SET status = $1, updated_on = NOW()
			WHERE status = $2
			  AND NOT EXISTS (
			      SELECT 1 FROM rentals
			      WHERE rentals.car_id = cars.id AND rentals.status IN ($3, $4)
			  )`,
			domain.CarStatusAvailable, domain.CarStatusRented,
			domain.RentalStatusConfirmed, domain.RentalStatusOngoing)
		if err != nil {
			logger.Error("Failed to release stale rented cars", "error", err)
			return
		}

		occupied, err := jr.exec(ctx, `
			UPDATE cars SET status = $1, updated_on = NOW()
			WHERE status = $2
			  AND EXISTS (
			      SELECT 1 FROM rentals
			      WHERE rentals.car_id = cars.id AND rentals.status IN ($3, $4)
			  )`,
			domain.CarStatusRented, domain.CarStatusAvailable,
			domain.RentalStatusConfirmed, domain.RentalStatusOngoing)
		if err != nil {
			logger.Error("Failed to mark occupied cars", "error", err)
			return
		}

		if freed > 0 || occupied > 0 {
			logger.Warn("Repaired drifted car statuses", "freed", freed, "occupied", occupied)
		} else {
			logger.Info("Car statuses consistent")
		}
	})
}

func (jr *JobRunner) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := jr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
