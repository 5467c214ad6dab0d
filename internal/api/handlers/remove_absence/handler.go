package remove_absence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/absences"
)

const (
	msgInvalidAbsenceID = "некорректный ID отсутствия"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "отсутствие не найдено"
	msgForbidden        = "удалить отсутствие может только его владелец"
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

// Handle DELETE /api/v1/absences/{absenceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	absenceID, err := strconv.ParseInt(mux.Vars(r)["absenceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /absences/{id} - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Remove(r.Context(), userID, absenceID); err != nil {
		switch {
		case errors.Is(err, absences.ErrAbsenceNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, absences.ErrAccessDenied):
			h.logger.Warn("DELETE /absences/{id} - Access denied: absence_id=%d, user_id=%d", absenceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /absences/{id} - Failed: absence_id=%d, error=%v", absenceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /absences/{id} - Removed: absence_id=%d, user_id=%d", absenceID, userID)
	w.WriteHeader(http.StatusNoContent)
}
