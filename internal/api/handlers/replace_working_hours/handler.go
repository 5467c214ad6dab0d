package replace_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/schedule"
	"github.com/m04kA/SMC-BarberService/internal/service/schedule/models"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "расписание может менять только сам барбер"
	msgBarberNotFound     = "барбер не найден"
	msgInvalidSchedule    = "некорректное расписание"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/barbers/{barberId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/working-hours - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ReplaceWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Replace(r.Context(), userID, barberID, req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrBarberNotFound):
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/{id}/working-hours - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /barbers/{id}/working-hours - Failed: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id}/working-hours - Replaced: barber_id=%d, days=%d", barberID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
