package jobs_test

import (
	"context"
	"testing"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/jobs"
	"drivehub-backend/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLifecycle struct {
	mock.Mock
}

func (m *mockLifecycle) Transition(ctx context.Context, actor domain.Actor, rentalID int32, target domain.RentalStatus) (*service.TransitionResult, error) {
	args := m.Called(ctx, actor, rentalID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransitionResult), args.Error(1)
}

func TestActivateDueRentals(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	lifecycle := new(mockLifecycle)
	runner := jobs.NewJobRunner(db, lifecycle, &config.Config{})

	dbMock.ExpectQuery("SELECT id FROM rentals WHERE status = \\$1 AND start_date <= \\$2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5).AddRow(8))

	system := domain.Actor{Role: domain.RoleSystem}
	lifecycle.On("Transition", mock.Anything, system, int32(5), domain.RentalStatusOngoing).
		Return(&service.TransitionResult{RentalStatus: domain.RentalStatusOngoing, CarStatus: domain.CarStatusRented}, nil)
	// A concurrent transition already moved this one; the job moves on.
	lifecycle.On("Transition", mock.Anything, system, int32(8), domain.RentalStatusOngoing).
		Return(nil, domain.ErrConflict)

	runner.ActivateDueRentals()

	lifecycle.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestReconcileCarStatus(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	runner := jobs.NewJobRunner(db, new(mockLifecycle), &config.Config{})

	dbMock.ExpectExec("UPDATE cars SET status").
		WithArgs(domain.CarStatusAvailable, domain.CarStatusRented,
			domain.RentalStatusConfirmed, domain.RentalStatusOngoing).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec("UPDATE cars SET status").
		WithArgs(domain.CarStatusRented, domain.CarStatusAvailable,
			domain.RentalStatusConfirmed, domain.RentalStatusOngoing).
		WillReturnResult(sqlmock.NewResult(0, 0))

	runner.ReconcileCarStatus()

	assert.NoError(t, dbMock.ExpectationsWereMet())
}
