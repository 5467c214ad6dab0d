package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	slotCache "github.com/m04kA/SMC-BarberService/internal/infra/cache/slots"
)

// CatalogRepository интерфейс каталога услуг и барберов
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
	ListOverlapping(ctx context.Context, barberIDs []int64, interval domain.Interval) ([]*domain.Appointment, error)
}

// SlotCache интерфейс кеша слотов. barberID == 0 означает любого барбера.
// Set получает версию, возвращенную Get
type SlotCache interface {
	Get(ctx context.Context, date time.Time, serviceID, barberID int64) ([]string, slotCache.Version, bool, error)
	Set(ctx context.Context, date time.Time, serviceID, barberID int64, version slotCache.Version, slots []string) error
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
