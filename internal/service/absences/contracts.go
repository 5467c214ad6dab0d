package absences

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	Create(ctx context.Context, absence *domain.Absence) (*domain.Absence, error)
	GetByID(ctx context.Context, id int64) (*domain.Absence, error)
	Delete(ctx context.Context, id int64) error
	ListFrom(ctx context.Context, from time.Time, barberID *int64) ([]*domain.Absence, error)
}

// BarberRepository интерфейс для проверки барбера
type BarberRepository interface {
	GetBarber(ctx context.Context, id int64) (*domain.Barber, error)
}

// SlotCache интерфейс инвалидации кеша слотов
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
