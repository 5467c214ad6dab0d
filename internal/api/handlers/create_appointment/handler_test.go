package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
)

type fakeUseCase struct {
	got *createAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	return &createAppointment.Response{
		ID:        9,
		ClientID:  req.ClientID,
		BarberID:  2,
		ServiceID: req.ServiceID,
		StartAt:   start,
		EndAt:     start.Add(30 * time.Minute),
		Status:    domain.StatusConfirmed,
	}, nil
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	return req.WithContext(middleware.WithUserID(req.Context(), 100))
}

func TestHandler_Handle(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, time.UTC, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"serviceId":1,"date":"2025-10-15","startTime":"10:00"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(100), uc.got.ClientID)
	assert.Equal(t, domain.AnyBarber{}, uc.got.Barber)

	var body AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(2), body.BarberID)
	assert.Equal(t, "10:00", body.StartTime)
	assert.Equal(t, "10:30", body.EndTime)
	assert.Equal(t, "confirmed", body.Status)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{name: "bad json", body: `{`, want: http.StatusBadRequest},
		{name: "bad date", body: `{"serviceId":1,"date":"15/10/2025","startTime":"10:00"}`, want: http.StatusBadRequest},
		{name: "taken", body: `{"serviceId":1,"barberId":2,"date":"2025-10-15","startTime":"10:00"}`, err: createAppointment.ErrSlotNotAvailable, want: http.StatusConflict},
		{name: "off grid", body: `{"serviceId":1,"date":"2025-10-15","startTime":"10:05"}`, err: createAppointment.ErrInvalidTimeSlot, want: http.StatusBadRequest},
		{name: "past", body: `{"serviceId":1,"date":"2025-10-15","startTime":"10:00"}`, err: createAppointment.ErrStartInPast, want: http.StatusBadRequest},
		{name: "internal", body: `{"serviceId":1,"date":"2025-10-15","startTime":"10:00"}`, err: createAppointment.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, time.UTC, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.body))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_Handle_NoUser(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, time.UTC, logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
