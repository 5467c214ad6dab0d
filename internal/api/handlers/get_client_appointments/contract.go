package get_client_appointments

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListForClient(ctx context.Context, actorID, clientID int64) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
