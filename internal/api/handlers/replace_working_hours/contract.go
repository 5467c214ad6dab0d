package replace_working_hours

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/schedule/models"
)

type ScheduleService interface {
	Replace(ctx context.Context, actorID, barberID int64, req models.ReplaceWorkingHoursRequest) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
