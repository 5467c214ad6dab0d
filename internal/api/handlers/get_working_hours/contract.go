package get_working_hours

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/schedule/models"
)

type ScheduleService interface {
	Get(ctx context.Context, barberID int64) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
