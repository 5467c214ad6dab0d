package remove_absence

import "context"

type AbsenceService interface {
	Remove(ctx context.Context, actorID, absenceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
