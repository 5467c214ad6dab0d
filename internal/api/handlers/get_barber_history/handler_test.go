package get_barber_history

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/pagination"
)

type fakeService struct {
	got pagination.Params
	err error
}

func (f *fakeService) History(_ context.Context, actorID, barberID int64, params pagination.Params) (*models.HistoryResponse, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	if actorID != barberID {
		return nil, appointments.ErrAccessDenied
	}
	return &models.HistoryResponse{Items: []models.AppointmentResponse{}, Page: 1, PageSize: 10}, nil
}

func serve(svc *fakeService, path string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/barbers/{barberId}/history", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/barbers/7/history?page=2&pageSize=5", 7)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pagination.Params{Page: 2, PageSize: 5}, svc.got)
}

func TestHandler_Handle_Defaults(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/barbers/7/history", 7)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pagination.Params{}, svc.got)
}

func TestHandler_Handle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/barbers/7/history?page=0", 7).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/barbers/7/history?pageSize=x", 7).Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{}, "/barbers/7/history", 8).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: appointments.ErrInternal}, "/barbers/7/history", 7).Code)
}
