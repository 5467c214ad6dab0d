package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
	"github.com/m04kA/SMC-BarberService/pkg/pagination"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	ListPage(ctx context.Context, filter domain.AppointmentFilter, params pagination.Params) ([]*domain.Appointment, int, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, at time.Time) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// SlotCache интерфейс инвалидации кеша слотов
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
