package get_barber_history

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberService/pkg/pagination"
)

type AppointmentService interface {
	History(ctx context.Context, actorID, barberID int64, params pagination.Params) (*models.HistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
