package get_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/service/schedule"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgBarberNotFound  = "барбер не найден"
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

// Handle GET /api/v1/barbers/{barberId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/working-hours - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	result, err := h.service.Get(r.Context(), barberID)
	if err != nil {
		if errors.Is(err, schedule.ErrBarberNotFound) {
			handlers.RespondNotFound(w, msgBarberNotFound)
			return
		}
		h.logger.Error("GET /barbers/{id}/working-hours - Failed: barber_id=%d, error=%v", barberID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
