package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
)

type fakeRepo struct {
	services []*domain.Service
	barbers  []*domain.Barber
	err      error
}

func (r *fakeRepo) ListActiveServices(context.Context) ([]*domain.Service, error) {
	return r.services, r.err
}

func (r *fakeRepo) ListActiveBarbers(context.Context) ([]*domain.Barber, error) {
	return r.barbers, r.err
}

func TestService_List(t *testing.T) {
	repo := &fakeRepo{
		services: []*domain.Service{{ID: 1, Name: "Стрижка", DurationMinutes: 30, Price: 1500, Active: true}},
		barbers:  []*domain.Barber{{ID: 1, Name: "Алексей", Active: true}, {ID: 2, Name: "Борис", Active: true}},
	}
	svc := NewService(repo, logger.NewNop())

	services, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services.Services, 1)
	assert.Equal(t, 30, services.Services[0].DurationMinutes)

	barbers, err := svc.ListBarbers(context.Background())
	require.NoError(t, err)
	assert.Len(t, barbers.Barbers, 2)
}

func TestService_List_Empty(t *testing.T) {
	svc := NewService(&fakeRepo{}, logger.NewNop())

	services, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, services.Services)
	assert.Empty(t, services.Services)
}

func TestService_List_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db down")}, logger.NewNop())

	_, err := svc.ListServices(context.Background())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.ListBarbers(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
