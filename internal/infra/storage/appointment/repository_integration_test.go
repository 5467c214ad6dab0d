//go:build integration

package appointment

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

type integrationEnv struct {
	db        *dbmetrics.DB
	txManager *txmanager.TransactionManager
	repo      *Repository
	barberID  int64
	serviceID int64
}

func setupIntegration(t *testing.T) *integrationEnv {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil)
	txManager := txmanager.NewTransactionManager(db)
	require.NoError(t, migrations.Run(ctx, db, txManager, logger.NewNop()))

	env := &integrationEnv{
		db:        db,
		txManager: txManager,
		repo:      NewRepository(db),
		barberID:  time.Now().UnixNano(),
	}

	_, err = db.ExecContext(ctx, `INSERT INTO barbers (id, name) VALUES ($1, $2)`, env.barberID, "Интеграционный")
	require.NoError(t, err)
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO services (name, duration_minutes, price) VALUES ($1, 30, 1500) RETURNING id`, "Стрижка",
	).Scan(&env.serviceID))

	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM appointments WHERE barber_id = $1`, env.barberID)
		_, _ = db.ExecContext(ctx, `DELETE FROM barbers WHERE id = $1`, env.barberID)
		_, _ = db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, env.serviceID)
	})

	return env
}

func (e *integrationEnv) appointment(start time.Time, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ClientID:     100,
		BarberID:     e.barberID,
		ServiceID:    e.serviceID,
		StartAt:      start,
		EndAt:        start.Add(30 * time.Minute),
		Status:       status,
		ServiceName:  "Стрижка",
		ServicePrice: 1500,
	}
}

func TestRepository_Create_ExclusionConstraint(t *testing.T) {
	env := setupIntegration(t)
	ctx := context.Background()
	start := time.Date(2031, 3, 3, 10, 0, 0, 0, time.UTC)

	_, err := env.repo.Create(ctx, env.appointment(start, domain.StatusConfirmed))
	require.NoError(t, err)

	_, err = env.repo.Create(ctx, env.appointment(start.Add(15*time.Minute), domain.StatusPending))
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = env.repo.Create(ctx, env.appointment(start.Add(30*time.Minute), domain.StatusConfirmed))
	assert.NoError(t, err)

	_, err = env.repo.Create(ctx, env.appointment(start.Add(15*time.Minute), domain.StatusCancelled))
	assert.NoError(t, err)
}

func TestRepository_Create_ConcurrentSameSlot(t *testing.T) {
	env := setupIntegration(t)
	ctx := context.Background()
	start := time.Date(2031, 3, 4, 12, 0, 0, 0, time.UTC)

	const workers = 6
	var (
		wg   sync.WaitGroup
		gate = make(chan struct{})
		errs = make([]error, workers)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-gate
			errs[i] = env.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
				_, err := env.repo.Create(txCtx, env.appointment(start, domain.StatusConfirmed))
				return err
			})
		}(i)
	}

	close(gate)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, ErrOverlap) || errors.Is(err, pgerrors.ErrSerializationFailure), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	active, err := env.repo.ListOverlapping(ctx, []int64{env.barberID},
		domain.Interval{Start: start, End: start.Add(30 * time.Minute)})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
