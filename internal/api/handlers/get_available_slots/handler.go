package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "дата обязательна"
	msgInvalidParams    = "некорректный формат даты или ID барбера, ожидается date=YYYY-MM-DD"
	msgServiceNotFound  = "услуга не найдена"
	msgBarberNotFound   = "барбер не найден"
	msgDateInPast       = "дата в прошлом"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD), barberId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, barberID, err := ToUseCaseRequest(serviceID, dateStr, query.Get("barberId"), h.location)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrBarberNotFound):
			h.logger.Warn("GET /available-slots - Barber not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: service_id=%d, date=%s, slots_count=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, barberID))
}
