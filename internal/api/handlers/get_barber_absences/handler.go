package get_barber_absences

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service  AbsenceService
	location *time.Location
	logger   Logger
}

func NewHandler(service AbsenceService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/absences
// Query params: from (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/absences - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var from *time.Time
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, fromStr, h.location)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		from = &parsed
	}

	result, err := h.service.List(r.Context(), barberID, from)
	if err != nil {
		h.logger.Error("GET /barbers/{id}/absences - Failed: barber_id=%d, error=%v", barberID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
