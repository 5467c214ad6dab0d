package schedule

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	GetByBarber(ctx context.Context, barberID int64) (domain.WeeklySchedule, error)
	Replace(ctx context.Context, barberID int64, days domain.WeeklySchedule) (domain.WeeklySchedule, error)
}

// BarberRepository интерфейс для проверки барбера
type BarberRepository interface {
	GetBarber(ctx context.Context, id int64) (*domain.Barber, error)
}

// SlotCache интерфейс полной инвалидации кеша слотов
type SlotCache interface {
	InvalidateAll(ctx context.Context) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
