package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
)

// Pinger проверка доступности зависимости
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Response тело ответа health check
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type Handler struct {
	db      Pinger
	timeout time.Duration
	logger  Logger
}

func NewHandler(db Pinger, timeout time.Duration, logger Logger) *Handler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Handler{
		db:      db,
		timeout: timeout,
		logger:  logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /health - Database unavailable: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{Status: "degraded", Database: "unavailable"})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok", Database: "ok"})
}
