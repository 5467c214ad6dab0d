package get_barber_agenda

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

type AppointmentService interface {
	Agenda(ctx context.Context, actorID, barberID int64, date time.Time) (*models.AgendaResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
