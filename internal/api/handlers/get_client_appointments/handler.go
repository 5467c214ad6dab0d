package get_client_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "можно просматривать только свои записи"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(mux.Vars(r)["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/appointments - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListForClient(r.Context(), userID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /clients/{id}/appointments - Failed: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/appointments - Retrieved: client_id=%d, count=%d", clientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
