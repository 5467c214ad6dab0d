package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/create_appointment"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"
	msgBarberNotFound     = "барбер не найден"
	msgStartInPast        = "время записи уже прошло"
	msgInvalidTimeSlot    = "время вне рабочего окна или сетки 15 минут"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgInvalidInput       = "некорректные данные записи"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, h.location)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: user_id=%d, date=%s, start=%s",
				userID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrBarberNotFound):
			handlers.RespondBadRequest(w, msgBarberNotFound)

		case errors.Is(err, createAppointment.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, user_id=%d, barber_id=%d",
		result.ID, userID, result.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
