package register_absence

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/absences/models"
)

type AbsenceService interface {
	Register(ctx context.Context, actorID, barberID int64, req models.CreateAbsenceRequest) (*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
