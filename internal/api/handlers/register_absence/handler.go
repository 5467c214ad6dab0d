package register_absence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/absences"
	"github.com/m04kA/SMC-BarberService/internal/service/absences/models"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "отсутствие может зарегистрировать только сам барбер"
	msgDuplicate          = "отсутствие на эту дату уже зарегистрировано"
	msgDateInPast         = "нельзя зарегистрировать отсутствие на прошедшую дату"
	msgBarberNotFound     = "барбер не найден или неактивен"
	msgInvalidInput       = "некорректные данные отсутствия"
)

type Handler struct {
	service AbsenceService
	logger  Logger
}

func NewHandler(service AbsenceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/barbers/{barberId}/absences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /barbers/{id}/absences - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /barbers/{id}/absences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), userID, barberID, req)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, absences.ErrDuplicateAbsence):
			handlers.RespondConflict(w, msgDuplicate)

		case errors.Is(err, absences.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, absences.ErrBarberNotFound):
			handlers.RespondBadRequest(w, msgBarberNotFound)

		case errors.Is(err, absences.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /barbers/{id}/absences - Failed: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /barbers/{id}/absences - Registered: barber_id=%d, date=%s", barberID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
