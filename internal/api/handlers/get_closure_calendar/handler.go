package get_closure_calendar

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	getClosureCalendar "github.com/m04kA/SMC-BarberService/internal/usecase/get_closure_calendar"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	useCase  GetClosureCalendarUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetClosureCalendarUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/closures
// Query params: from (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getClosureCalendar.Request{}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, h.location)
		if err != nil {
			h.logger.Warn("GET /closures - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.From = &from
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /closures - Failed to build calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /closures - Calendar built: from=%s, days=%d",
		result.From.Format(domain.DateFormat), len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
