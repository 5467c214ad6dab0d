package update_appointment_status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgTooLateToCancel      = "отменить запись можно не позднее чем за 2 часа до начала"
	msgInvalidTransition    = "недопустимая смена статуса записи"
	msgConcurrentUpdate     = "запись была изменена, повторите запрос"
)

// Action смена статуса, которую обслуживает обработчик
type Action string

const (
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionConfirm  Action = "confirm"
	ActionNoShow   Action = "no-show"
)

type Handler struct {
	service AppointmentService
	action  Action
	logger  Logger
}

func NewHandler(service AppointmentService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := fmt.Sprintf("PATCH /appointments/{id}/%s", h.action)

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid appointment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.call(r.Context(), userID, appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: appointment_id=%d, user_id=%d", route, appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrTooLateToCancel):
			handlers.RespondUnprocessable(w, msgTooLateToCancel)

		case errors.Is(err, appointments.ErrInvalidTransition):
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("%s - Failed: appointment_id=%d, error=%v", route, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Done: appointment_id=%d, user_id=%d, status=%s", route, appointmentID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) call(ctx context.Context, userID, appointmentID int64) (*models.StatusChangeResponse, error) {
	switch h.action {
	case ActionCancel:
		return h.service.Cancel(ctx, userID, appointmentID)
	case ActionComplete:
		return h.service.Complete(ctx, userID, appointmentID)
	case ActionConfirm:
		return h.service.Confirm(ctx, userID, appointmentID)
	case ActionNoShow:
		return h.service.MarkNoShow(ctx, userID, appointmentID)
	default:
		return nil, fmt.Errorf("unknown action %q", h.action)
	}
}
