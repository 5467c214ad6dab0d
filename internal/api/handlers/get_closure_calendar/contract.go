package get_closure_calendar

import (
	"context"

	getClosureCalendar "github.com/m04kA/SMC-BarberService/internal/usecase/get_closure_calendar"
)

type GetClosureCalendarUseCase interface {
	Execute(ctx context.Context, req *getClosureCalendar.Request) (*getClosureCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
