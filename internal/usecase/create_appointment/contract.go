package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// CatalogRepository интерфейс каталога.
// В транзакции GetBarber и ListActiveBarbers блокируют строки барберов (FOR UPDATE) в порядке ID
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetBarber(ctx context.Context, id int64) (*domain.Barber, error)
	ListActiveBarbers(ctx context.Context) ([]*domain.Barber, error)
}

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	AbsentBarberIDs(ctx context.Context, date time.Time, barberIDs []int64) (map[int64]bool, error)
}

// ScheduleRepository интерфейс репозитория расписаний барберов
type ScheduleRepository interface {
	GetByBarbers(ctx context.Context, barberIDs []int64) (map[int64]domain.WeeklySchedule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	ListOverlapping(ctx context.Context, barberIDs []int64, interval domain.Interval) ([]*domain.Appointment, error)
}

// SlotCache интерфейс инвалидации кеша слотов
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// MetricsRecorder интерфейс метрик записи
type MetricsRecorder interface {
	RecordAppointmentCommit(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
