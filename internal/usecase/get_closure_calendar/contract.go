package get_closure_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	ListFrom(ctx context.Context, from time.Time, barberID *int64) ([]*domain.Absence, error)
}

// BarberRepository интерфейс для подсчета активных барберов
type BarberRepository interface {
	CountActiveBarbers(ctx context.Context) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
