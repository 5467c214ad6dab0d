package update_appointment_status

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, actorID, id int64) (*models.StatusChangeResponse, error)
	Complete(ctx context.Context, actorID, id int64) (*models.StatusChangeResponse, error)
	Confirm(ctx context.Context, actorID, id int64) (*models.StatusChangeResponse, error)
	MarkNoShow(ctx context.Context, actorID, id int64) (*models.StatusChangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
