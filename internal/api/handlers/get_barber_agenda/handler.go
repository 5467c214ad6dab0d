package get_barber_agenda

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden       = "агенда доступна только самому барберу"
)

type Handler struct {
	service  AppointmentService
	location *time.Location
	now      func() time.Time
	logger   Logger
}

func NewHandler(service AppointmentService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/agenda
// Query params: date (опционально, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/agenda - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	date := h.now().In(h.location)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err = time.ParseInLocation(domain.DateFormat, dateStr, h.location)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.service.Agenda(r.Context(), userID, barberID, date)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /barbers/{id}/agenda - Failed: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/agenda - Retrieved: barber_id=%d, date=%s, count=%d",
		barberID, result.Date, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
