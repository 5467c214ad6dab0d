package get_barber_history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments"
	"github.com/m04kA/SMC-BarberService/pkg/pagination"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidPage     = "некорректные параметры пагинации"
	msgForbidden       = "история доступна только самому барберу"
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

// Handle GET /api/v1/barbers/{barberId}/history
// Query params: page, pageSize (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/history - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	params, err := parsePagination(r)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPage)
		return
	}

	result, err := h.service.History(r.Context(), userID, barberID, params)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /barbers/{id}/history - Failed: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/history - Retrieved: barber_id=%d, page=%d, total=%d",
		barberID, result.Page, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parsePagination читает page и pageSize; отсутствующие значения остаются нулевыми
func parsePagination(r *http.Request) (pagination.Params, error) {
	var params pagination.Params
	query := r.URL.Query()

	if s := query.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			return params, errors.New("invalid page")
		}
		params.Page = page
	}
	if s := query.Get("pageSize"); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil || size < 1 {
			return params, errors.New("invalid pageSize")
		}
		params.PageSize = size
	}
	return params, nil
}
