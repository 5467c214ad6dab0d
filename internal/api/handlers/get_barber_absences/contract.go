package get_barber_absences

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/service/absences/models"
)

type AbsenceService interface {
	List(ctx context.Context, barberID int64, from *time.Time) (*models.AbsenceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
